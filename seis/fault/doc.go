// Package fault classifies errors raised by the trace processing packages.
//
// Three kinds exist:
//   - Configuration: malformed windows, unresolvable header references,
//     incompatible channel identities. The affected trace is skipped.
//   - Precondition: an operation was applied to data it cannot handle,
//     e.g. unevenly sampled samples passed to an FFT. The trace is skipped.
//   - Consistency: sample-count, azimuth or predicted-offset mismatches.
//     The pairwise or single-trace operation is aborted.
//
// None of the kinds are fatal for a collection: batch drivers log the
// failure and continue with the remaining traces.
package fault
