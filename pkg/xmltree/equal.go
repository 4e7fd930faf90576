package xmltree

import "reflect"

// Equal reports whether a and b carry the same content. Fields flagged
// as identifiers are ignored, so two objects that differ only in their
// public IDs still compare equal. Floats and times compare within the
// epsilons carried by opts.
//
// An unset scalar on the left side is skipped rather than compared;
// the comparison is therefore not symmetric, and callers that need
// symmetry should check both directions.
func Equal(a, b Object, opts *Options) bool {
	return equal(a, b, opts.norm())
}

func equal(a, b Object, o Options) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	ae := av.Elem()
	be := bv.Elem()

	for _, f := range a.Descriptors() {
		if f.ID {
			continue
		}
		afv := ae.FieldByName(f.Name)
		bfv := be.FieldByName(f.Name)
		if !afv.IsValid() || !bfv.IsValid() {
			return false
		}

		switch f.Kind {
		case Attribute, Scalar, Enum, CharData:
			if !scalarEqual(afv, bfv, o) {
				return false
			}
		case Nested:
			if afv.IsNil() {
				continue
			}
			if bfv.IsNil() {
				return false
			}
			sub, ok := afv.Interface().(Object)
			if !ok {
				return false
			}
			other, ok := bfv.Interface().(Object)
			if !ok {
				return false
			}
			if !equal(sub, other, o) {
				return false
			}
		case Repeated:
			if afv.Len() == 0 {
				continue
			}
			if afv.Len() != bfv.Len() {
				return false
			}
			for i := 0; i < afv.Len(); i++ {
				sub, ok := afv.Index(i).Interface().(Object)
				if !ok {
					return false
				}
				other, ok := bfv.Index(i).Interface().(Object)
				if !ok {
					return false
				}
				if !equal(sub, other, o) {
					return false
				}
			}
		}
	}
	return true
}
