package xmltree

import (
	"fmt"
	"reflect"

	"github.com/beevik/etree"
)

// Marshal serializes obj into a new element named tag.
//
// Output order is fixed by kindRank, not by the order fields appeared
// in any source document: attributes first, then scalar, enum, nested
// and repeated children, then preserved foreign subtrees, then
// character data.
func Marshal(obj Object, tag string, opts *Options) (*etree.Element, error) {
	o := opts.norm()
	return marshal(obj, tag, o)
}

func marshal(obj Object, tag string, o Options) (*etree.Element, error) {
	el := etree.NewElement(tag)
	rv := reflect.ValueOf(obj).Elem()

	var charData string

	for _, f := range ordered(obj.Descriptors()) {
		fv := rv.FieldByName(f.Name)
		if !fv.IsValid() {
			return nil, fmt.Errorf(
				"xmltree: %s declares unknown field %s", rv.Type(), f.Name)
		}

		switch f.Kind {
		case Attribute:
			if s, ok := scalarString(fv, o); ok {
				el.CreateAttr(f.XML, s)
			}
		case Scalar, Enum:
			if s, ok := scalarString(fv, o); ok {
				el.CreateElement(f.XML).SetText(s)
			}
		case Nested:
			if fv.IsNil() {
				continue
			}
			sub, ok := fv.Interface().(Object)
			if !ok {
				return nil, fmt.Errorf(
					"xmltree: field %s of %s is not an Object",
					f.Name, rv.Type())
			}
			child, err := marshal(sub, f.XML, o)
			if err != nil {
				return nil, err
			}
			el.AddChild(child)
		case Repeated:
			for i := 0; i < fv.Len(); i++ {
				sub, ok := fv.Index(i).Interface().(Object)
				if !ok {
					return nil, fmt.Errorf(
						"xmltree: field %s of %s is not an Object list",
						f.Name, rv.Type())
				}
				child, err := marshal(sub, f.XML, o)
				if err != nil {
					return nil, err
				}
				el.AddChild(child)
			}
		case CharData:
			if s, ok := scalarString(fv, o); ok {
				charData = s
			}
		}
	}

	// Preserved foreign subtrees go after declared children.
	if c, ok := obj.(extrasCarrier); ok {
		for _, foreign := range c.extras().foreign {
			el.AddChild(foreign.Copy())
		}
	}

	if charData != "" {
		el.SetText(charData)
	}

	return el, nil
}
