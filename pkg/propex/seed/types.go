package seed

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/randalmurphal/propex/pkg/propex"
	"github.com/randalmurphal/propex/pkg/propex/ownership"
)

// Type names accepted in the "type" field of a declaration.
const (
	TypeInt      = "int"
	TypeInt64    = "int64"
	TypeFloat64  = "float64"
	TypeString   = "string"
	TypeBool     = "bool"
	TypeDuration = "duration"
	TypeStrings  = "[]string"
)

// build converts raw to the named type and wraps it in a node of kind.
// An empty type name infers the type from raw.
func build(kind ownership.Kind, typeName string, raw any) (propex.Node, error) {
	if typeName == "" {
		var err error
		if typeName, err = infer(raw); err != nil {
			return nil, err
		}
	}

	switch typeName {
	case TypeInt:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt || n > math.MaxInt {
			return nil, fmt.Errorf("%w: %d overflows int", ErrInvalidValue, n)
		}
		return node(kind, int(n))
	case TypeInt64:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return node(kind, n)
	case TypeFloat64:
		f, err := toFloat64(raw)
		if err != nil {
			return nil, err
		}
		return node(kind, f)
	case TypeString:
		switch v := raw.(type) {
		case string:
			return node(kind, v)
		case int, int64, uint64, float64, bool:
			return node(kind, fmt.Sprint(v))
		}
		return nil, invalid(raw, typeName)
	case TypeBool:
		b, err := toBool(raw)
		if err != nil {
			return nil, err
		}
		return node(kind, b)
	case TypeDuration:
		d, err := toDuration(raw)
		if err != nil {
			return nil, err
		}
		return node(kind, d)
	case TypeStrings:
		ss, err := toStrings(raw)
		if err != nil {
			return nil, err
		}
		return node(kind, ss)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, typeName)
	}
}

func infer(raw any) (string, error) {
	switch v := raw.(type) {
	case int:
		return TypeInt, nil
	case int64, uint64:
		return TypeInt64, nil
	case float64:
		return TypeFloat64, nil
	case string:
		return TypeString, nil
	case bool:
		return TypeBool, nil
	case []any:
		if _, err := toStrings(v); err == nil {
			return TypeStrings, nil
		}
	}
	return "", fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
}

func node[T any](kind ownership.Kind, v T) (propex.Node, error) {
	if kind == ownership.KindBorrowed {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPolicy, kind)
	}
	c, err := propex.MakeCell(kind, v)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func invalid(raw any, typeName string) error {
	return fmt.Errorf("%w: %v (%T) is not %s", ErrInvalidValue, raw, raw, typeName)
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, invalid(raw, TypeInt64)
		}
		return int64(v), nil
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), nil
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, invalid(raw, TypeInt64)
}

func toFloat64(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, nil
		}
	}
	return 0, invalid(raw, TypeFloat64)
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	}
	return false, invalid(raw, TypeBool)
}

// toDuration parses strings with time.ParseDuration and reads numbers as
// seconds.
func toDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d, nil
		}
	case int, int64, uint64, float64:
		f, _ := toFloat64(v)
		return time.Duration(f * float64(time.Second)), nil
	}
	return 0, invalid(raw, TypeDuration)
}

func toStrings(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(raw, TypeStrings)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, invalid(raw, TypeStrings)
}
