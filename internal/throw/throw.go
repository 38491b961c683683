package throw

import "github.com/pkg/errors"

// Threading errors up and down all the recursive operations during
// triangulation and trapezoidization would add a ton of complexity to the
// code. Instead, deep code panics with one of the kinds below, and every
// public entry point recovers to convert the panic to an error.

var (
	// ErrInvalidInput is malformed input: bad index buffers, coincident or
	// non-finite points, empty polygons.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternalInvariant means the engine corrupted its own topology. Never
	// retry on it.
	ErrInternalInvariant = errors.New("internal invariant violation")
	// ErrDegenerateGeometry is input that is well formed but has no
	// non-degenerate configuration to work with, such as all-collinear points.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Fatalf panics with an internal invariant violation.
func Fatalf(format string, args ...interface{}) {
	panic(errors.Wrapf(ErrInternalInvariant, format, args...))
}

// Invalidf panics with an invalid input error.
func Invalidf(format string, args ...interface{}) {
	panic(errors.Wrapf(ErrInvalidInput, format, args...))
}

// Degeneratef panics with a degenerate geometry error.
func Degeneratef(format string, args ...interface{}) {
	panic(errors.Wrapf(ErrDegenerateGeometry, format, args...))
}

// Recover converts a recovered panic value into an error if it carries one of
// our error kinds. Any other panic is re-raised.
//
// Use as:
//
//	defer func() { err = throw.Recover(recover(), err) }()
func Recover(r interface{}, err error) error {
	if r == nil {
		return err
	}
	if e, ok := r.(error); ok && IsKind(e) {
		return e
	}
	panic(r)
}

// IsKind reports whether err wraps one of the three error kinds.
func IsKind(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternalInvariant) ||
		errors.Is(err, ErrDegenerateGeometry)
}
