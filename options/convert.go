package options

import (
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
	stringType   = reflect.TypeFor[string]()
	intType      = reflect.TypeFor[int]()
	anyType      = reflect.TypeFor[any]()
)

// convertValue turns v into a reflect.Value assignable to t.
//
// Assignable values pass through unchanged and nil becomes the zero value of
// nilable types. Everything else is coerced with spf13/cast according to the
// kind of t and then converted to t itself, so a string lands in a named
// string type and a JSON float64 lands in an int.
func convertValue(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		if nilable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	coerced, err := coerce(v, t)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s: %w", v, t, err)
	}

	cv := reflect.ValueOf(coerced)
	if !cv.Type().ConvertibleTo(t) {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
	}
	return cv.Convert(t), nil
}

func coerce(v any, t reflect.Type) (any, error) {
	switch t {
	case durationType:
		return cast.ToDurationE(v)
	case timeType:
		return cast.ToTimeE(v)
	}

	switch t.Kind() {
	case reflect.Bool:
		return cast.ToBoolE(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, err
		}
		if reflect.Zero(t).OverflowInt(n) {
			return nil, fmt.Errorf("%d overflows %s", n, t)
		}
		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := cast.ToUint64E(v)
		if err != nil {
			return nil, err
		}
		if reflect.Zero(t).OverflowUint(n) {
			return nil, fmt.Errorf("%d overflows %s", n, t)
		}
		return n, nil
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		if reflect.Zero(t).OverflowFloat(f) {
			return nil, fmt.Errorf("%g overflows %s", f, t)
		}
		return f, nil
	case reflect.String:
		return cast.ToStringE(v)
	case reflect.Slice:
		switch t.Elem() {
		case stringType:
			return cast.ToStringSliceE(v)
		case intType:
			return cast.ToIntSliceE(v)
		}
	case reflect.Map:
		if t.Key() == stringType {
			switch t.Elem() {
			case stringType:
				return cast.ToStringMapStringE(v)
			case anyType:
				return cast.ToStringMapE(v)
			}
		}
	}
	return nil, fmt.Errorf("unsupported conversion from %T", v)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
