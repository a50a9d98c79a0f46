package schema

import "math"

// Normalize converts v to the canonical Go type for t: bool, int64, float64
// or string. Integer leaves accept any Go integer or an integral float;
// float leaves accept any finite number. It reports false when v cannot be
// represented as t.
func Normalize(t ValueType, v any) (any, bool) {
	switch t {
	case TypeBool:
		b, ok := v.(bool)
		return b, ok
	case TypeString:
		s, ok := v.(string)
		return s, ok
	case TypeInt:
		switch x := v.(type) {
		case float32:
			return integral(float64(x))
		case float64:
			return integral(x)
		case uint:
			return fitUint(uint64(x))
		case uint64:
			return fitUint(x)
		}
		if i, ok := signed(v); ok {
			return i, true
		}
		if u, ok := unsigned(v); ok {
			return int64(u), true
		}
		return nil, false
	case TypeFloat:
		switch x := v.(type) {
		case float32:
			return finite(float64(x))
		case float64:
			return finite(x)
		}
		if i, ok := signed(v); ok {
			return float64(i), true
		}
		if u, ok := unsigned(v); ok {
			return float64(u), true
		}
		switch x := v.(type) {
		case uint:
			return float64(x), true
		case uint64:
			return float64(x), true
		}
		return nil, false
	default:
		return nil, false
	}
}

// Zero returns the zero value of t in canonical form.
func Zero(t ValueType) any {
	switch t {
	case TypeBool:
		return false
	case TypeInt:
		return int64(0)
	case TypeFloat:
		return float64(0)
	case TypeString:
		return ""
	default:
		return nil
	}
}

// AsFloat returns a canonical numeric value as float64.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func integral(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, false
	}
	return int64(f), true
}

// finite rejects NaN and the infinities, which have no JSON encoding.
func finite(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

func fitUint(u uint64) (any, bool) {
	if u > math.MaxInt64 {
		return nil, false
	}
	return int64(u), true
}

func signed(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	default:
		return 0, false
	}
}

func unsigned(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	default:
		return 0, false
	}
}
