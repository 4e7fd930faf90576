package xmltree

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

// scalarString renders a scalar field value for XML output.
// The second return value is false when the field is unset.
func scalarString(fv reflect.Value, o Options) (string, bool) {
	switch v := fv.Interface().(type) {
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	case *float64:
		if v == nil {
			return "", false
		}
		return strconv.FormatFloat(*v, 'g', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	case *qtime.Time:
		if v == nil {
			return "", false
		}
		return v.Format(qtime.ISOFormat{
			SecondsDigits: o.SecondsDigits}) + "Z", true
	}
	return "", false
}

// setScalar coerces a string from XML into a scalar field.
func setScalar(fv reflect.Value, s string) error {
	s = strings.TrimSpace(s)
	switch fv.Interface().(type) {
	case string:
		fv.SetString(s)
	case *string:
		fv.Set(reflect.ValueOf(&s))
	case float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("xmltree: bad float %q: %w", s, err)
		}
		fv.SetFloat(f)
	case *float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("xmltree: bad float %q: %w", s, err)
		}
		fv.Set(reflect.ValueOf(&f))
	case int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("xmltree: bad int %q: %w", s, err)
		}
		fv.SetInt(int64(i))
	case *int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("xmltree: bad int %q: %w", s, err)
		}
		fv.Set(reflect.ValueOf(&i))
	case *bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("xmltree: bad bool %q: %w", s, err)
		}
		fv.Set(reflect.ValueOf(&b))
	case *qtime.Time:
		t, err := qtime.Parse(s)
		if err != nil {
			return fmt.Errorf("xmltree: bad timestamp %q: %w", s, err)
		}
		fv.Set(reflect.ValueOf(&t))
	default:
		return fmt.Errorf("xmltree: unsupported scalar type %s", fv.Type())
	}
	return nil
}

// scalarEqual compares two scalar fields. A field unset on the left is
// skipped; set on the left but unset on the right is unequal. Floats
// and timestamps compare within the configured tolerances.
func scalarEqual(av, bv reflect.Value, o Options) bool {
	switch a := av.Interface().(type) {
	case string:
		b := bv.Interface().(string)
		if a == "" {
			return true
		}
		return a == b
	case *string:
		b := bv.Interface().(*string)
		if a == nil {
			return true
		}
		return b != nil && *a == *b
	case float64:
		b := bv.Interface().(float64)
		return qmath.FloatEqual(a, b, o.FloatEpsilon)
	case *float64:
		b := bv.Interface().(*float64)
		if a == nil {
			return true
		}
		return b != nil && qmath.FloatEqual(*a, *b, o.FloatEpsilon)
	case int:
		return a == bv.Interface().(int)
	case *int:
		b := bv.Interface().(*int)
		if a == nil {
			return true
		}
		return b != nil && *a == *b
	case *bool:
		b := bv.Interface().(*bool)
		if a == nil {
			return true
		}
		return b != nil && *a == *b
	case *qtime.Time:
		b := bv.Interface().(*qtime.Time)
		if a == nil {
			return true
		}
		return b != nil && a.Equal(*b, o.TimeEpsilon)
	}
	return false
}
