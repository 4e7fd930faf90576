package model

import "github.com/quakepy/qcat/pkg/xmltree"

// FocalMechanism describes the source geometry of an event, by nodal
// planes, principal axes, moment tensors, or any combination.
type FocalMechanism struct {
	xmltree.Extras
	PublicID                 string
	TriggeringOriginID       string
	NodalPlanes              *NodalPlanes
	PrincipalAxes            *PrincipalAxes
	AzimuthalGap             *float64
	StationPolarityCount     *int
	Misfit                   *float64
	StationDistributionRatio *float64
	MethodID                 string
	WaveformIDs              []*WaveformStreamID
	EvaluationMode           string
	EvaluationStatus         string
	MomentTensors            []*MomentTensor
	Comments                 []*Comment
	CreationInfo             *CreationInfo
}

func (f *FocalMechanism) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "TriggeringOriginID", XML: "triggeringOriginID", Kind: xmltree.Scalar},
		{Name: "NodalPlanes", XML: "nodalPlanes", Kind: xmltree.Nested},
		{Name: "PrincipalAxes", XML: "principalAxes", Kind: xmltree.Nested},
		{Name: "AzimuthalGap", XML: "azimuthalGap", Kind: xmltree.Scalar},
		{Name: "StationPolarityCount", XML: "stationPolarityCount", Kind: xmltree.Scalar},
		{Name: "Misfit", XML: "misfit", Kind: xmltree.Scalar},
		{Name: "StationDistributionRatio", XML: "stationDistributionRatio", Kind: xmltree.Scalar},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "WaveformIDs", XML: "waveformID", Kind: xmltree.Repeated},
		{Name: "EvaluationMode", XML: "evaluationMode", Kind: xmltree.Enum},
		{Name: "EvaluationStatus", XML: "evaluationStatus", Kind: xmltree.Enum},
		{Name: "MomentTensors", XML: "momentTensor", Kind: xmltree.Repeated},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// MomentTensor is a seismic moment tensor solution.
type MomentTensor struct {
	xmltree.Extras
	PublicID           string
	DerivedOriginID    string
	MomentMagnitudeID  string
	ScalarMoment       *RealQuantity
	Tensor             *Tensor
	Variance           *float64
	VarianceReduction  *float64
	DoubleCouple       *float64
	CLVD               *float64
	Iso                *float64
	GreensFunctionID   string
	FilterID           string
	SourceTimeFunction *SourceTimeFunction
	DataUsed           []*DataUsed
	MethodID           string
	Category           string
	InversionType      string
	Comments           []*Comment
	CreationInfo       *CreationInfo
}

func (m *MomentTensor) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "DerivedOriginID", XML: "derivedOriginID", Kind: xmltree.Scalar},
		{Name: "MomentMagnitudeID", XML: "momentMagnitudeID", Kind: xmltree.Scalar},
		{Name: "ScalarMoment", XML: "scalarMoment", Kind: xmltree.Nested},
		{Name: "Tensor", XML: "tensor", Kind: xmltree.Nested},
		{Name: "Variance", XML: "variance", Kind: xmltree.Scalar},
		{Name: "VarianceReduction", XML: "varianceReduction", Kind: xmltree.Scalar},
		{Name: "DoubleCouple", XML: "doubleCouple", Kind: xmltree.Scalar},
		{Name: "CLVD", XML: "clvd", Kind: xmltree.Scalar},
		{Name: "Iso", XML: "iso", Kind: xmltree.Scalar},
		{Name: "GreensFunctionID", XML: "greensFunctionID", Kind: xmltree.Scalar},
		{Name: "FilterID", XML: "filterID", Kind: xmltree.Scalar},
		{Name: "SourceTimeFunction", XML: "sourceTimeFunction", Kind: xmltree.Nested},
		{Name: "DataUsed", XML: "dataUsed", Kind: xmltree.Repeated},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "Category", XML: "category", Kind: xmltree.Enum},
		{Name: "InversionType", XML: "inversionType", Kind: xmltree.Enum},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// Tensor holds the six independent moment tensor components in N·m,
// in spherical coordinates (r, t, p).
type Tensor struct {
	xmltree.Extras
	Mrr *RealQuantity
	Mtt *RealQuantity
	Mpp *RealQuantity
	Mrt *RealQuantity
	Mrp *RealQuantity
	Mtp *RealQuantity
}

func (t *Tensor) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Mrr", XML: "Mrr", Kind: xmltree.Nested},
		{Name: "Mtt", XML: "Mtt", Kind: xmltree.Nested},
		{Name: "Mpp", XML: "Mpp", Kind: xmltree.Nested},
		{Name: "Mrt", XML: "Mrt", Kind: xmltree.Nested},
		{Name: "Mrp", XML: "Mrp", Kind: xmltree.Nested},
		{Name: "Mtp", XML: "Mtp", Kind: xmltree.Nested},
	}
}

// DataUsed records what waveform data entered a tensor inversion.
type DataUsed struct {
	xmltree.Extras
	WaveType       string
	StationCount   *int
	ComponentCount *int
	ShortestPeriod *float64
	LongestPeriod  *float64
}

func (d *DataUsed) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "WaveType", XML: "waveType", Kind: xmltree.Enum},
		{Name: "StationCount", XML: "stationCount", Kind: xmltree.Scalar},
		{Name: "ComponentCount", XML: "componentCount", Kind: xmltree.Scalar},
		{Name: "ShortestPeriod", XML: "shortestPeriod", Kind: xmltree.Scalar},
		{Name: "LongestPeriod", XML: "longestPeriod", Kind: xmltree.Scalar},
	}
}

// SourceTimeFunction describes the moment release over time. Durations
// are seconds.
type SourceTimeFunction struct {
	xmltree.Extras
	Type      string
	Duration  float64
	RiseTime  *float64
	DecayTime *float64
}

func (s *SourceTimeFunction) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Type", XML: "type", Kind: xmltree.Enum},
		{Name: "Duration", XML: "duration", Kind: xmltree.Scalar},
		{Name: "RiseTime", XML: "riseTime", Kind: xmltree.Scalar},
		{Name: "DecayTime", XML: "decayTime", Kind: xmltree.Scalar},
	}
}

// NodalPlanes pairs the two possible fault planes of a double-couple
// solution. The attribute marks which one is the fault plane when
// known (1 or 2).
type NodalPlanes struct {
	xmltree.Extras
	NodalPlane1    *NodalPlane
	NodalPlane2    *NodalPlane
	PreferredPlane *int
}

func (n *NodalPlanes) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PreferredPlane", XML: "preferredPlane", Kind: xmltree.Attribute},
		{Name: "NodalPlane1", XML: "nodalPlane1", Kind: xmltree.Nested},
		{Name: "NodalPlane2", XML: "nodalPlane2", Kind: xmltree.Nested},
	}
}

// NodalPlane is one fault plane in strike/dip/rake degrees.
type NodalPlane struct {
	xmltree.Extras
	Strike *RealQuantity
	Dip    *RealQuantity
	Rake   *RealQuantity
}

func (n *NodalPlane) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Strike", XML: "strike", Kind: xmltree.Nested},
		{Name: "Dip", XML: "dip", Kind: xmltree.Nested},
		{Name: "Rake", XML: "rake", Kind: xmltree.Nested},
	}
}

// PrincipalAxes are the tension, pressure and neutral axes of a
// moment tensor.
type PrincipalAxes struct {
	xmltree.Extras
	TAxis *Axis
	PAxis *Axis
	NAxis *Axis
}

func (p *PrincipalAxes) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "TAxis", XML: "tAxis", Kind: xmltree.Nested},
		{Name: "PAxis", XML: "pAxis", Kind: xmltree.Nested},
		{Name: "NAxis", XML: "nAxis", Kind: xmltree.Nested},
	}
}

// Axis is one principal axis: azimuth and plunge in degrees, length
// in N·m.
type Axis struct {
	xmltree.Extras
	Azimuth *RealQuantity
	Plunge  *RealQuantity
	Length  *RealQuantity
}

func (a *Axis) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Azimuth", XML: "azimuth", Kind: xmltree.Nested},
		{Name: "Plunge", XML: "plunge", Kind: xmltree.Nested},
		{Name: "Length", XML: "length", Kind: xmltree.Nested},
	}
}
