// Package model holds the seismic event data model: a tree of record
// types rooted at EventParameters, closely following the QuakeML basic
// event description. Every type declares its serialization layout via
// xmltree field descriptors, so one reflective engine handles reading,
// writing and comparison for the whole tree.
//
// Optional scalars are pointers; a nil pointer means the field was
// absent in the source and is omitted on output. Cross-entity
// references (preferred origin, pick association) are identifier
// strings, never pointers; only parent-child containment uses slices.
//
// All depths and depth uncertainties are metres. Importers convert
// from source units once, at the parse boundary.
package model

import (
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/quakepy/qcat/pkg/xmltree"
)

// RealQuantity is a float measurement with an optional symmetric or
// asymmetric error bar.
type RealQuantity struct {
	xmltree.Extras
	Value            float64
	Uncertainty      *float64
	LowerUncertainty *float64
	UpperUncertainty *float64
	ConfidenceLevel  *float64
}

func (q *RealQuantity) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Value", XML: "value", Kind: xmltree.Scalar},
		{Name: "Uncertainty", XML: "uncertainty", Kind: xmltree.Scalar},
		{Name: "LowerUncertainty", XML: "lowerUncertainty", Kind: xmltree.Scalar},
		{Name: "UpperUncertainty", XML: "upperUncertainty", Kind: xmltree.Scalar},
		{Name: "ConfidenceLevel", XML: "confidenceLevel", Kind: xmltree.Scalar},
	}
}

// NewRealQuantity returns a quantity carrying just a value.
func NewRealQuantity(value float64) *RealQuantity {
	return &RealQuantity{Value: value}
}

// NewRealQuantityErr returns a quantity with a symmetric uncertainty.
func NewRealQuantityErr(value, uncertainty float64) *RealQuantity {
	return &RealQuantity{Value: value, Uncertainty: &uncertainty}
}

// IntegerQuantity is an integer measurement with an optional error bar.
type IntegerQuantity struct {
	xmltree.Extras
	Value            int
	Uncertainty      *int
	LowerUncertainty *int
	UpperUncertainty *int
	ConfidenceLevel  *float64
}

func (q *IntegerQuantity) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Value", XML: "value", Kind: xmltree.Scalar},
		{Name: "Uncertainty", XML: "uncertainty", Kind: xmltree.Scalar},
		{Name: "LowerUncertainty", XML: "lowerUncertainty", Kind: xmltree.Scalar},
		{Name: "UpperUncertainty", XML: "upperUncertainty", Kind: xmltree.Scalar},
		{Name: "ConfidenceLevel", XML: "confidenceLevel", Kind: xmltree.Scalar},
	}
}

// NewIntegerQuantity returns a quantity carrying just a value.
func NewIntegerQuantity(value int) *IntegerQuantity {
	return &IntegerQuantity{Value: value}
}

// TimeQuantity is a timestamp with an optional uncertainty in seconds.
type TimeQuantity struct {
	xmltree.Extras
	Value            *qtime.Time
	Uncertainty      *float64
	LowerUncertainty *float64
	UpperUncertainty *float64
	ConfidenceLevel  *float64
}

func (q *TimeQuantity) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Value", XML: "value", Kind: xmltree.Scalar},
		{Name: "Uncertainty", XML: "uncertainty", Kind: xmltree.Scalar},
		{Name: "LowerUncertainty", XML: "lowerUncertainty", Kind: xmltree.Scalar},
		{Name: "UpperUncertainty", XML: "upperUncertainty", Kind: xmltree.Scalar},
		{Name: "ConfidenceLevel", XML: "confidenceLevel", Kind: xmltree.Scalar},
	}
}

// NewTimeQuantity returns a quantity carrying just a timestamp.
func NewTimeQuantity(t qtime.Time) *TimeQuantity {
	return &TimeQuantity{Value: &t}
}

// CreationInfo records who produced a record and when.
type CreationInfo struct {
	xmltree.Extras
	AgencyID     string
	AgencyURI    string
	Author       string
	AuthorURI    string
	CreationTime *qtime.Time
	Version      string
}

func (c *CreationInfo) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "AgencyID", XML: "agencyID", Kind: xmltree.Scalar},
		{Name: "AgencyURI", XML: "agencyURI", Kind: xmltree.Scalar},
		{Name: "Author", XML: "author", Kind: xmltree.Scalar},
		{Name: "AuthorURI", XML: "authorURI", Kind: xmltree.Scalar},
		{Name: "CreationTime", XML: "creationTime", Kind: xmltree.Scalar},
		{Name: "Version", XML: "version", Kind: xmltree.Scalar},
	}
}

// Comment is free text attached to almost any record.
type Comment struct {
	xmltree.Extras
	ID   string
	Text string
}

func (c *Comment) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "ID", XML: "id", Kind: xmltree.Attribute, ID: true},
		{Name: "Text", XML: "text", Kind: xmltree.Scalar},
	}
}

// EventDescription is a named free-text description of an event, for
// region names and the like.
type EventDescription struct {
	xmltree.Extras
	Text string
	Type string
}

func (d *EventDescription) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Text", XML: "text", Kind: xmltree.Scalar},
		{Name: "Type", XML: "type", Kind: xmltree.Enum},
	}
}

// WaveformStreamID identifies a recording stream by its SEED codes.
// The optional character data carries a resource URI.
type WaveformStreamID struct {
	xmltree.Extras
	NetworkCode  string
	StationCode  string
	ChannelCode  string
	LocationCode string
	ResourceURI  string
}

func (w *WaveformStreamID) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "NetworkCode", XML: "networkCode", Kind: xmltree.Attribute},
		{Name: "StationCode", XML: "stationCode", Kind: xmltree.Attribute},
		{Name: "ChannelCode", XML: "channelCode", Kind: xmltree.Attribute},
		{Name: "LocationCode", XML: "locationCode", Kind: xmltree.Attribute},
		{Name: "ResourceURI", XML: "", Kind: xmltree.CharData},
	}
}

// Phase is a seismic phase code carried as character data.
type Phase struct {
	xmltree.Extras
	Code string
}

func (p *Phase) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Code", XML: "", Kind: xmltree.CharData},
	}
}

// CompositeTime expresses a partially known origin time field by
// field, used when a source gives only, say, year and month.
type CompositeTime struct {
	xmltree.Extras
	Year   *IntegerQuantity
	Month  *IntegerQuantity
	Day    *IntegerQuantity
	Hour   *IntegerQuantity
	Minute *IntegerQuantity
	Second *RealQuantity
}

func (c *CompositeTime) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Year", XML: "year", Kind: xmltree.Nested},
		{Name: "Month", XML: "month", Kind: xmltree.Nested},
		{Name: "Day", XML: "day", Kind: xmltree.Nested},
		{Name: "Hour", XML: "hour", Kind: xmltree.Nested},
		{Name: "Minute", XML: "minute", Kind: xmltree.Nested},
		{Name: "Second", XML: "second", Kind: xmltree.Nested},
	}
}

// TimeWindow bounds an interval around a reference time, in seconds.
type TimeWindow struct {
	xmltree.Extras
	Begin     float64
	End       float64
	Reference *qtime.Time
}

func (w *TimeWindow) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Begin", XML: "begin", Kind: xmltree.Scalar},
		{Name: "End", XML: "end", Kind: xmltree.Scalar},
		{Name: "Reference", XML: "reference", Kind: xmltree.Scalar},
	}
}
