// Package xmltree implements the metadata-driven mapping between the
// domain model and XML.
//
// Every model type declares a flat list of field descriptors; one
// generic traversal over that list drives serialization,
// deserialization and structural equality. Child elements that match
// no descriptor are preserved verbatim and re-emitted on write, so
// foreign content survives a round trip.
package xmltree

import (
	"github.com/beevik/etree"
)

// Kind is the role a declared field plays in the XML rendering.
// It is a closed tagged union: every descriptor is exactly one of
// these, and all three engine operations switch over the same value.
type Kind int

const (
	// Attribute is rendered as an XML attribute of the element.
	Attribute Kind = iota
	// Scalar is a child element holding a basic typed value.
	Scalar
	// Enum is a child element holding an enumerated string value.
	Enum
	// Nested is a child element holding one complex sub-object.
	Nested
	// Repeated is a complex child element that may occur many times.
	Repeated
	// CharData is the character data of the element itself.
	CharData
)

// Field describes one declared field of a model type.
type Field struct {
	// Name is the Go struct field name.
	Name string
	// XML is the external attribute or element name. Only local names
	// are matched; namespaces are emitted but not validated.
	XML string
	// Kind classifies the field.
	Kind Kind
	// ID marks resource-identifier fields. They serialize normally but
	// are skipped during equality comparison, since round-tripped and
	// freshly generated identifiers may legitimately differ.
	ID bool
}

// Object is implemented by every model type handled by the engine.
// Descriptors must return the same slice on every call; declaration
// order fixes serialization order within each kind.
type Object interface {
	Descriptors() []Field
}

// Options tunes serialization precision and equality tolerances.
// The zero value selects the defaults.
type Options struct {
	// SecondsDigits is the fractional-second precision for rendered
	// timestamps. Default 6, truncated.
	SecondsDigits int
	// FloatEpsilon is the absolute tolerance for float equality.
	// Default 1e-9.
	FloatEpsilon float64
	// TimeEpsilon is the tolerance for timestamp equality, in seconds.
	// Default 1e-9.
	TimeEpsilon float64
}

const (
	defaultFloatEpsilon = 1e-9
	defaultTimeEpsilon  = 1e-9
)

func (o *Options) norm() Options {
	res := Options{
		SecondsDigits: 6,
		FloatEpsilon:  defaultFloatEpsilon,
		TimeEpsilon:   defaultTimeEpsilon,
	}
	if o == nil {
		return res
	}
	if o.SecondsDigits != 0 {
		res.SecondsDigits = o.SecondsDigits
	}
	if o.FloatEpsilon > 0 {
		res.FloatEpsilon = o.FloatEpsilon
	}
	if o.TimeEpsilon > 0 {
		res.TimeEpsilon = o.TimeEpsilon
	}
	return res
}

// Extras stores child elements that matched no descriptor during
// deserialization. Model types embed it so foreign subtrees survive a
// round trip.
type Extras struct {
	foreign []*etree.Element
}

// Foreign returns the preserved unrecognized child elements.
func (e *Extras) Foreign() []*etree.Element {
	return e.foreign
}

// AddForeign preserves a copy of an unrecognized child element.
func (e *Extras) AddForeign(el *etree.Element) {
	e.foreign = append(e.foreign, el.Copy())
}

func (e *Extras) extras() *Extras { return e }

// extrasCarrier is satisfied by any model type embedding Extras.
type extrasCarrier interface {
	extras() *Extras
}

// kindRank fixes the emission order: attributes, then scalar, enum,
// nested and repeated children in declaration order, then preserved
// foreign subtrees, then character data.
func kindRank(k Kind) int {
	switch k {
	case Attribute:
		return 0
	case Scalar:
		return 1
	case Enum:
		return 2
	case Nested:
		return 3
	case Repeated:
		return 4
	default: // CharData
		return 5
	}
}

// ordered returns the descriptors sorted by kind rank, keeping
// declaration order within each kind.
func ordered(fields []Field) []Field {
	res := make([]Field, 0, len(fields))
	for rank := 0; rank <= 5; rank++ {
		for _, f := range fields {
			if kindRank(f.Kind) == rank {
				res = append(res, f)
			}
		}
	}
	return res
}
