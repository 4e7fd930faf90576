package model

import "github.com/quakepy/qcat/pkg/xmltree"

// Magnitude is a network magnitude computed from one origin. Type is
// a free string since legacy bulletins invent their own codes.
type Magnitude struct {
	xmltree.Extras
	PublicID         string
	Mag              *RealQuantity
	Type             string
	OriginID         string
	MethodID         string
	StationCount     *int
	AzimuthalGap     *float64
	EvaluationMode   string
	EvaluationStatus string
	Contributions    []*StationMagnitudeContribution
	Comments         []*Comment
	CreationInfo     *CreationInfo
}

func (m *Magnitude) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "Mag", XML: "mag", Kind: xmltree.Nested},
		{Name: "Type", XML: "type", Kind: xmltree.Scalar},
		{Name: "OriginID", XML: "originID", Kind: xmltree.Scalar},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "StationCount", XML: "stationCount", Kind: xmltree.Scalar},
		{Name: "AzimuthalGap", XML: "azimuthalGap", Kind: xmltree.Scalar},
		{Name: "EvaluationMode", XML: "evaluationMode", Kind: xmltree.Enum},
		{Name: "EvaluationStatus", XML: "evaluationStatus", Kind: xmltree.Enum},
		{Name: "Contributions", XML: "stationMagnitudeContribution", Kind: xmltree.Repeated},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// StationMagnitude is a single-station magnitude estimate.
type StationMagnitude struct {
	xmltree.Extras
	PublicID     string
	OriginID     string
	Mag          *RealQuantity
	Type         string
	AmplitudeID  string
	MethodID     string
	WaveformID   *WaveformStreamID
	Comments     []*Comment
	CreationInfo *CreationInfo
}

func (m *StationMagnitude) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "OriginID", XML: "originID", Kind: xmltree.Scalar},
		{Name: "Mag", XML: "mag", Kind: xmltree.Nested},
		{Name: "Type", XML: "type", Kind: xmltree.Scalar},
		{Name: "AmplitudeID", XML: "amplitudeID", Kind: xmltree.Scalar},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "WaveformID", XML: "waveformID", Kind: xmltree.Nested},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// StationMagnitudeContribution weights one station magnitude within a
// network magnitude.
type StationMagnitudeContribution struct {
	xmltree.Extras
	StationMagnitudeID string
	Residual           *float64
	Weight             *float64
}

func (c *StationMagnitudeContribution) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "StationMagnitudeID", XML: "stationMagnitudeID", Kind: xmltree.Scalar},
		{Name: "Residual", XML: "residual", Kind: xmltree.Scalar},
		{Name: "Weight", XML: "weight", Kind: xmltree.Scalar},
	}
}
