package xmltree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/beevik/etree"
)

// Unmarshal populates obj from el. The optional ext descriptors extend
// the object's own declaration for this call only, which lets a caller
// accept site-specific children without changing the type.
//
// Child elements that match no descriptor are not an error: they are
// preserved verbatim when the object embeds Extras, and dropped
// otherwise.
func Unmarshal(obj Object, el *etree.Element, ext []Field) error {
	fields := obj.Descriptors()
	if len(ext) > 0 {
		fields = append(append([]Field{}, fields...), ext...)
	}
	rv := reflect.ValueOf(obj).Elem()

	for _, f := range fields {
		switch f.Kind {
		case Attribute:
			attr := el.SelectAttr(f.XML)
			if attr == nil {
				continue
			}
			fv := rv.FieldByName(f.Name)
			if err := setScalar(fv, attr.Value); err != nil {
				return fmt.Errorf(
					"xmltree: attribute %s of <%s>: %w",
					f.XML, el.Tag, err)
			}
		case CharData:
			text := strings.TrimSpace(el.Text())
			if text == "" {
				continue
			}
			fv := rv.FieldByName(f.Name)
			if err := setScalar(fv, text); err != nil {
				return fmt.Errorf(
					"xmltree: character data of <%s>: %w", el.Tag, err)
			}
		}
	}

	for _, child := range el.ChildElements() {
		f, ok := matchChild(fields, child.Tag)
		if !ok {
			if c, ok := obj.(extrasCarrier); ok {
				c.extras().AddForeign(child)
			}
			continue
		}
		if err := setChild(rv, f, child); err != nil {
			return err
		}
	}

	return nil
}

// matchChild finds the first element-valued descriptor for tag. First
// match in declaration order wins.
func matchChild(fields []Field, tag string) (Field, bool) {
	for _, f := range fields {
		switch f.Kind {
		case Scalar, Enum, Nested, Repeated:
			if f.XML == tag {
				return f, true
			}
		}
	}
	return Field{}, false
}

func setChild(rv reflect.Value, f Field, child *etree.Element) error {
	fv := rv.FieldByName(f.Name)
	if !fv.IsValid() {
		return fmt.Errorf(
			"xmltree: %s declares unknown field %s", rv.Type(), f.Name)
	}

	switch f.Kind {
	case Scalar, Enum:
		text := strings.TrimSpace(child.Text())
		if err := setScalar(fv, text); err != nil {
			return fmt.Errorf("xmltree: <%s>: %w", child.Tag, err)
		}
	case Nested:
		sub := reflect.New(fv.Type().Elem())
		obj, ok := sub.Interface().(Object)
		if !ok {
			return fmt.Errorf(
				"xmltree: field %s of %s is not an Object", f.Name, rv.Type())
		}
		if err := Unmarshal(obj, child, nil); err != nil {
			return err
		}
		fv.Set(sub)
	case Repeated:
		sub := reflect.New(fv.Type().Elem().Elem())
		obj, ok := sub.Interface().(Object)
		if !ok {
			return fmt.Errorf(
				"xmltree: field %s of %s is not an Object list",
				f.Name, rv.Type())
		}
		if err := Unmarshal(obj, child, nil); err != nil {
			return err
		}
		fv.Set(reflect.Append(fv, sub))
	}
	return nil
}
