package sysvar

import (
	"math"

	"github.com/cockroachdb/errors"
)

// Manifest decoders produce int64, float64 and []any; Go callers pass any
// integer type. These helpers accept both.

func toInt64(v any, lo, hi int64) (int64, error) {
	var n int64

	switch x := v.(type) {
	case int:
		n = int64(x)
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint8:
		n = int64(x)
	case uint16:
		n = int64(x)
	case uint32:
		n = int64(x)
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, errors.Wrapf(ErrInvalid, "%d overflows", x)
		}

		n = int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return 0, errors.Wrapf(ErrInvalid, "%d overflows", x)
		}

		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, errors.Wrapf(ErrInvalid, "%v is not an integer", x)
		}

		n = int64(x)
	default:
		return 0, errors.Wrapf(ErrInvalid, "%v (%T) is not an integer", v, v)
	}

	if n < lo || n > hi {
		return 0, errors.Wrapf(ErrInvalid, "%d is outside [%d, %d]", n, lo, hi)
	}

	return n, nil
}

func toUint64(v any, hi uint64) (uint64, error) {
	var n uint64

	switch x := v.(type) {
	case uint:
		n = uint64(x)
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	default:
		s, err := toInt64(v, 0, math.MaxInt64)
		if err != nil {
			return 0, err
		}

		n = uint64(s)
	}

	if n > hi {
		return 0, errors.Wrapf(ErrInvalid, "%d is above %d", n, hi)
	}

	return n, nil
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	default:
		n, err := toInt64(v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalid, "%v (%T) is not a number", v, v)
		}

		return float64(n), nil
	}
}

func toStrings(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return x, nil
	case []any:
		out := make([]string, 0, len(x))

		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalid, "%v is not a string", e)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, errors.Wrapf(ErrInvalid, "%v (%T) is not a list of names", v, v)
	}
}
