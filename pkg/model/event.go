package model

import "github.com/quakepy/qcat/pkg/xmltree"

// Event type codes used by the importers. The XML schema allows more;
// these are the ones legacy bulletins map onto.
const (
	TypeEarthquake        = "earthquake"
	TypeInducedEarthquake = "induced earthquake"
	TypeExplosion         = "explosion"
	TypeQuarryBlast       = "quarry blast"
	TypeNuclearExplosion  = "nuclear explosion"
	TypeRockBurst         = "rock burst"
	TypeLandslide         = "landslide"
	TypeNotExisting       = "not existing"
	TypeOther             = "other"

	CertaintyKnown     = "known"
	CertaintySuspected = "suspected"
)

// Event is one seismic event: all origin, magnitude, mechanism, pick
// and amplitude records that describe it, plus identifier references
// selecting the preferred ones.
type Event struct {
	xmltree.Extras
	PublicID                  string
	PreferredOriginID         string
	PreferredMagnitudeID      string
	PreferredFocalMechanismID string
	Type                      string
	TypeCertainty             string
	Descriptions              []*EventDescription
	Comments                  []*Comment
	CreationInfo              *CreationInfo
	Origins                   []*Origin
	Magnitudes                []*Magnitude
	StationMagnitudes         []*StationMagnitude
	FocalMechanisms           []*FocalMechanism
	Picks                     []*Pick
	Amplitudes                []*Amplitude
}

func (e *Event) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "PreferredOriginID", XML: "preferredOriginID", Kind: xmltree.Scalar},
		{Name: "PreferredMagnitudeID", XML: "preferredMagnitudeID", Kind: xmltree.Scalar},
		{Name: "PreferredFocalMechanismID", XML: "preferredFocalMechanismID", Kind: xmltree.Scalar},
		{Name: "Type", XML: "type", Kind: xmltree.Enum},
		{Name: "TypeCertainty", XML: "typeCertainty", Kind: xmltree.Enum},
		{Name: "Descriptions", XML: "description", Kind: xmltree.Repeated},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
		{Name: "Origins", XML: "origin", Kind: xmltree.Repeated},
		{Name: "Magnitudes", XML: "magnitude", Kind: xmltree.Repeated},
		{Name: "StationMagnitudes", XML: "stationMagnitude", Kind: xmltree.Repeated},
		{Name: "FocalMechanisms", XML: "focalMechanism", Kind: xmltree.Repeated},
		{Name: "Picks", XML: "pick", Kind: xmltree.Repeated},
		{Name: "Amplitudes", XML: "amplitude", Kind: xmltree.Repeated},
	}
}

// PreferredOrigin resolves the preferred origin reference. When the
// reference is unset or dangling, the first origin is the fallback;
// nil means the event has no origins at all.
func (e *Event) PreferredOrigin() *Origin {
	if e.PreferredOriginID != "" {
		for _, o := range e.Origins {
			if o.PublicID == e.PreferredOriginID {
				return o
			}
		}
	}
	if len(e.Origins) > 0 {
		return e.Origins[0]
	}
	return nil
}

// PreferredMagnitude resolves the preferred magnitude reference with
// the same fallback rule as PreferredOrigin.
func (e *Event) PreferredMagnitude() *Magnitude {
	if e.PreferredMagnitudeID != "" {
		for _, m := range e.Magnitudes {
			if m.PublicID == e.PreferredMagnitudeID {
				return m
			}
		}
	}
	if len(e.Magnitudes) > 0 {
		return e.Magnitudes[0]
	}
	return nil
}

// PreferredFocalMechanism resolves the preferred focal mechanism
// reference with the same fallback rule as PreferredOrigin.
func (e *Event) PreferredFocalMechanism() *FocalMechanism {
	if e.PreferredFocalMechanismID != "" {
		for _, f := range e.FocalMechanisms {
			if f.PublicID == e.PreferredFocalMechanismID {
				return f
			}
		}
	}
	if len(e.FocalMechanisms) > 0 {
		return e.FocalMechanisms[0]
	}
	return nil
}

// MagnitudesForOrigin returns the magnitudes computed from the given
// origin, matched by identifier reference.
func (e *Event) MagnitudesForOrigin(o *Origin) []*Magnitude {
	var res []*Magnitude
	for _, m := range e.Magnitudes {
		if m.OriginID == o.PublicID {
			res = append(res, m)
		}
	}
	return res
}

// EventParameters is the document root: it owns every event of one
// catalog.
type EventParameters struct {
	xmltree.Extras
	PublicID     string
	Description  string
	Comments     []*Comment
	CreationInfo *CreationInfo
	Events       []*Event
}

func (p *EventParameters) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "Description", XML: "description", Kind: xmltree.Scalar},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
		{Name: "Events", XML: "event", Kind: xmltree.Repeated},
	}
}

// AddEvent appends ev to the container.
func (p *EventParameters) AddEvent(ev *Event) {
	p.Events = append(p.Events, ev)
}

// RemoveEvent deletes the event at index i, preserving order.
func (p *EventParameters) RemoveEvent(i int) {
	p.Events = append(p.Events[:i], p.Events[i+1:]...)
}
