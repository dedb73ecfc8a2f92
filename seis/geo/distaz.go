package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/unit"

	"github.com/cwbudde/algo-seis/seis/header"
)

const (
	// EarthRadiusKm is the mean Earth radius used for kilometre distances.
	EarthRadiusKm = 6371.0
	// WGS84Flattening is the flattening of the WGS84 ellipsoid.
	WGS84Flattening = 1 / 298.257223563
)

var (
	// ErrUndefined indicates a coordinate holding the undefined sentinel.
	ErrUndefined = errors.New("geo: coordinate is undefined")
	// ErrOutOfRange indicates a latitude outside [-90, 90].
	ErrOutOfRange = errors.New("geo: latitude out of range")
)

// Result holds the geometry between a station and an event. Angles are in
// degrees, DistKm in kilometres.
type Result struct {
	Gcarc  float64
	DistKm float64
	// Az is the azimuth from the event to the station.
	Az float64
	// Baz is the azimuth from the station to the event.
	Baz float64
}

// Calculator evaluates station/event geometry.
type Calculator struct {
	flattening float64
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithFlattening sets the ellipsoid flattening. Zero selects a sphere.
func WithFlattening(f float64) Option {
	return func(c *Calculator) {
		if f >= 0 && f < 1 {
			c.flattening = f
		}
	}
}

// New returns a Calculator using the WGS84 flattening unless overridden.
func New(opts ...Option) *Calculator {
	c := &Calculator{flattening: WGS84Flattening}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

var defaultCalculator = New()

// Default returns the shared WGS84 calculator.
func Default() *Calculator { return defaultCalculator }

// Distaz returns the geometry between station (stla, stlo) and event
// (evla, evlo), all in degrees.
func (c *Calculator) Distaz(stla, stlo, evla, evlo float64) (Result, error) {
	for _, v := range []float64{stla, stlo, evla, evlo} {
		if !header.IsDefined(v) || math.IsNaN(v) {
			return Result{}, ErrUndefined
		}
	}

	if math.Abs(stla) > 90 || math.Abs(evla) > 90 {
		return Result{}, fmt.Errorf("%w: station %g, event %g", ErrOutOfRange, stla, evla)
	}

	st := point{lat: c.geocentric(stla), lon: unit.AngleFromDeg(stlo)}
	ev := point{lat: c.geocentric(evla), lon: unit.AngleFromDeg(evlo)}

	arc := distance(ev, st)

	return Result{
		Gcarc:  arc.Deg(),
		DistKm: arc.Rad() * EarthRadiusKm,
		Az:     NormalizeAzimuth(azimuth(ev, st).Deg()),
		Baz:    NormalizeAzimuth(azimuth(st, ev).Deg()),
	}, nil
}

// BackAzimuth returns the azimuth from the station to the event in degrees.
func (c *Calculator) BackAzimuth(stla, stlo, evla, evlo float64) (float64, error) {
	r, err := c.Distaz(stla, stlo, evla, evlo)
	if err != nil {
		return 0, err
	}

	return r.Baz, nil
}

// FillHeader computes the geometry from the station and event coordinates
// in h and stores it in GCARC, DIST, AZ and BAZ.
func (c *Calculator) FillHeader(h *header.Header) error {
	r, err := c.Distaz(h.Stla, h.Stlo, h.Evla, h.Evlo)
	if err != nil {
		return err
	}

	h.Gcarc = r.Gcarc
	h.Dist = r.DistKm
	h.Az = r.Az
	h.Baz = r.Baz

	return nil
}

// NormalizeAzimuth maps deg into [0, 360).
func NormalizeAzimuth(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	if deg >= 360 {
		deg = 0
	}

	return deg
}

type point struct {
	lat, lon unit.Angle
}

func (c *Calculator) geocentric(latDeg float64) unit.Angle {
	lat := unit.AngleFromDeg(latDeg)
	if c.flattening == 0 || math.Abs(latDeg) == 90 {
		return lat
	}

	e := (1 - c.flattening) * (1 - c.flattening)

	return unit.Angle(math.Atan(e * lat.Tan()))
}

// distance is the haversine central angle between a and b.
func distance(a, b point) unit.Angle {
	dlat := unit.Angle((b.lat - a.lat) / 2)
	dlon := unit.Angle((b.lon - a.lon) / 2)
	s := dlat.Sin()*dlat.Sin() + a.lat.Cos()*b.lat.Cos()*dlon.Sin()*dlon.Sin()

	return unit.Angle(2 * math.Asin(math.Sqrt(math.Min(1, s))))
}

// azimuth is the initial bearing from a towards b.
func azimuth(a, b point) unit.Angle {
	dlon := b.lon - a.lon
	y := dlon.Sin() * b.lat.Cos()
	x := a.lat.Cos()*b.lat.Sin() - a.lat.Sin()*b.lat.Cos()*dlon.Cos()

	return unit.Angle(math.Atan2(y, x))
}
