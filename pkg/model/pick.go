package model

import "github.com/quakepy/qcat/pkg/xmltree"

// Pick is an observed onset time on one waveform stream.
type Pick struct {
	xmltree.Extras
	PublicID           string
	Time               *TimeQuantity
	WaveformID         *WaveformStreamID
	FilterID           string
	MethodID           string
	HorizontalSlowness *RealQuantity
	Backazimuth        *RealQuantity
	SlownessMethodID   string
	Onset              string
	PhaseHint          *Phase
	Polarity           string
	EvaluationMode     string
	EvaluationStatus   string
	Comments           []*Comment
	CreationInfo       *CreationInfo
}

func (p *Pick) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "Time", XML: "time", Kind: xmltree.Nested},
		{Name: "WaveformID", XML: "waveformID", Kind: xmltree.Nested},
		{Name: "FilterID", XML: "filterID", Kind: xmltree.Scalar},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "HorizontalSlowness", XML: "horizontalSlowness", Kind: xmltree.Nested},
		{Name: "Backazimuth", XML: "backazimuth", Kind: xmltree.Nested},
		{Name: "SlownessMethodID", XML: "slownessMethodID", Kind: xmltree.Scalar},
		{Name: "Onset", XML: "onset", Kind: xmltree.Enum},
		{Name: "PhaseHint", XML: "phaseHint", Kind: xmltree.Nested},
		{Name: "Polarity", XML: "polarity", Kind: xmltree.Enum},
		{Name: "EvaluationMode", XML: "evaluationMode", Kind: xmltree.Enum},
		{Name: "EvaluationStatus", XML: "evaluationStatus", Kind: xmltree.Enum},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// Amplitude is a measured waveform amplitude, optionally tied to a
// pick and a time window.
type Amplitude struct {
	xmltree.Extras
	PublicID         string
	GenericAmplitude *RealQuantity
	Type             string
	Category         string
	Unit             string
	MethodID         string
	Period           *RealQuantity
	SNR              *float64
	TimeWindow       *TimeWindow
	PickID           string
	WaveformID       *WaveformStreamID
	FilterID         string
	ScalingTime      *TimeQuantity
	MagnitudeHint    string
	EvaluationMode   string
	Comments         []*Comment
	CreationInfo     *CreationInfo
}

func (a *Amplitude) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "GenericAmplitude", XML: "genericAmplitude", Kind: xmltree.Nested},
		{Name: "Type", XML: "type", Kind: xmltree.Scalar},
		{Name: "Category", XML: "category", Kind: xmltree.Enum},
		{Name: "Unit", XML: "unit", Kind: xmltree.Enum},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "Period", XML: "period", Kind: xmltree.Nested},
		{Name: "SNR", XML: "snr", Kind: xmltree.Scalar},
		{Name: "TimeWindow", XML: "timeWindow", Kind: xmltree.Nested},
		{Name: "PickID", XML: "pickID", Kind: xmltree.Scalar},
		{Name: "WaveformID", XML: "waveformID", Kind: xmltree.Nested},
		{Name: "FilterID", XML: "filterID", Kind: xmltree.Scalar},
		{Name: "ScalingTime", XML: "scalingTime", Kind: xmltree.Nested},
		{Name: "MagnitudeHint", XML: "magnitudeHint", Kind: xmltree.Scalar},
		{Name: "EvaluationMode", XML: "evaluationMode", Kind: xmltree.Enum},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}
