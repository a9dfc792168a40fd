package testutil

import (
	"math/big"
	"reflect"
	"unsafe"
)

var bigIntType = reflect.TypeOf(big.Int{})

// DeepEqual is similar to reflect.DeepEqual, but treats nil as equal
// to empty maps and slices, and compares big.Int values numerically
// rather than by their internal word slices.
func DeepEqual(x, y interface{}) bool {
	return deepValueEqual(reflect.ValueOf(x), reflect.ValueOf(y))
}

func deepValueEqual(x, y reflect.Value) bool {
	if isEmpty(x) && isEmpty(y) {
		return true
	}
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}

	switch x.Kind() {
	case reflect.Ptr:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() == y.IsNil()
		}
		if x.Pointer() == y.Pointer() {
			return true
		}
		if x.Type().Elem() == bigIntType {
			// Pointer, not Interface, so unexported fields work too.
			xb := (*big.Int)(unsafe.Pointer(x.Pointer()))
			yb := (*big.Int)(unsafe.Pointer(y.Pointer()))
			return xb.Cmp(yb) == 0
		}
		return deepValueEqual(x.Elem(), y.Elem())

	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() == y.IsNil()
		}
		return deepValueEqual(x.Elem(), y.Elem())

	case reflect.Array, reflect.Slice:
		if x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !deepValueEqual(x.Index(i), y.Index(i)) {
				return false
			}
		}
		return true

	case reflect.Map:
		if x.Len() != y.Len() {
			return false
		}
		iter := x.MapRange()
		for iter.Next() {
			yv := y.MapIndex(iter.Key())
			if !yv.IsValid() || !deepValueEqual(iter.Value(), yv) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if !deepValueEqual(x.Field(i), y.Field(i)) {
				return false
			}
		}
		return true

	case reflect.Func:
		return x.IsNil() && y.IsNil()

	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		return x.Float() == y.Float()
	case reflect.String:
		return x.String() == y.String()
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	}
	return false
}
