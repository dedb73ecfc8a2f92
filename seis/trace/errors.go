package trace

import "errors"

var (
	// ErrUnevenlySpaced indicates an operation that needs evenly sampled data.
	ErrUnevenlySpaced = errors.New("trace: illegal operation on unevenly spaced data")
	// ErrNotTimeDomain indicates an operation that needs time-domain samples.
	ErrNotTimeDomain = errors.New("trace: data is not in the time domain")
	// ErrNotSpectral indicates an operation that needs spectral data.
	ErrNotSpectral = errors.New("trace: data is not spectral")
	// ErrWindowOutOfRange indicates a cut window outside the trace span under the Fatal policy.
	ErrWindowOutOfRange = errors.New("trace: cut window exceeds trace span")
	// ErrEmpty indicates a trace without samples.
	ErrEmpty = errors.New("trace: no samples")
	// ErrLengthMismatch indicates two traces with different sample counts.
	ErrLengthMismatch = errors.New("trace: sample counts differ")
	// ErrDeltaMismatch indicates two traces with different sample intervals.
	ErrDeltaMismatch = errors.New("trace: sample intervals differ")
	// ErrDivideByZero indicates division by a zero constant.
	ErrDivideByZero = errors.New("trace: division by zero")
	// ErrInvalidDelta indicates a missing or non-positive sample interval.
	ErrInvalidDelta = errors.New("trace: invalid sample interval")
)
