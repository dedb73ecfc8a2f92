// Package geo computes great-circle distance, azimuth and back-azimuth
// between a station and an event.
//
// Latitudes are converted to geocentric latitude using the configured
// ellipsoid flattening before spherical trigonometry is applied, which is
// accurate to a few hundredths of a degree for teleseismic work.
package geo
