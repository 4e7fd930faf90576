package model

import "github.com/quakepy/qcat/pkg/xmltree"

// Origin is a located and timed hypocenter.
//
// Latitude and longitude are degrees, depth is metres. Formats that
// express depth in kilometres are converted once on import.
type Origin struct {
	xmltree.Extras
	PublicID          string
	Time              *TimeQuantity
	Latitude          *RealQuantity
	Longitude         *RealQuantity
	Depth             *RealQuantity
	DepthType         string
	TimeFixed         *bool
	EpicenterFixed    *bool
	ReferenceSystemID string
	MethodID          string
	EarthModelID      string
	CompositeTimes    []*CompositeTime
	Quality           *OriginQuality
	Type              string
	Region            string
	EvaluationMode    string
	EvaluationStatus  string
	Uncertainties     []*OriginUncertainty
	Arrivals          []*Arrival
	Comments          []*Comment
	CreationInfo      *CreationInfo
}

func (o *Origin) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "Time", XML: "time", Kind: xmltree.Nested},
		{Name: "Latitude", XML: "latitude", Kind: xmltree.Nested},
		{Name: "Longitude", XML: "longitude", Kind: xmltree.Nested},
		{Name: "Depth", XML: "depth", Kind: xmltree.Nested},
		{Name: "DepthType", XML: "depthType", Kind: xmltree.Enum},
		{Name: "TimeFixed", XML: "timeFixed", Kind: xmltree.Scalar},
		{Name: "EpicenterFixed", XML: "epicenterFixed", Kind: xmltree.Scalar},
		{Name: "ReferenceSystemID", XML: "referenceSystemID", Kind: xmltree.Scalar},
		{Name: "MethodID", XML: "methodID", Kind: xmltree.Scalar},
		{Name: "EarthModelID", XML: "earthModelID", Kind: xmltree.Scalar},
		{Name: "CompositeTimes", XML: "compositeTime", Kind: xmltree.Repeated},
		{Name: "Quality", XML: "quality", Kind: xmltree.Nested},
		{Name: "Type", XML: "type", Kind: xmltree.Enum},
		{Name: "Region", XML: "region", Kind: xmltree.Scalar},
		{Name: "EvaluationMode", XML: "evaluationMode", Kind: xmltree.Enum},
		{Name: "EvaluationStatus", XML: "evaluationStatus", Kind: xmltree.Enum},
		{Name: "Uncertainties", XML: "originUncertainty", Kind: xmltree.Repeated},
		{Name: "Arrivals", XML: "arrival", Kind: xmltree.Repeated},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}

// OriginQuality summarizes the location solution: phase and station
// counts, residual rms, azimuthal gaps and epicentral distances.
type OriginQuality struct {
	xmltree.Extras
	AssociatedPhaseCount   *int
	UsedPhaseCount         *int
	AssociatedStationCount *int
	UsedStationCount       *int
	DepthPhaseCount        *int
	StandardError          *float64
	AzimuthalGap           *float64
	SecondaryAzimuthalGap  *float64
	GroundTruthLevel       string
	MinimumDistance        *float64
	MaximumDistance        *float64
	MedianDistance         *float64
}

func (q *OriginQuality) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "AssociatedPhaseCount", XML: "associatedPhaseCount", Kind: xmltree.Scalar},
		{Name: "UsedPhaseCount", XML: "usedPhaseCount", Kind: xmltree.Scalar},
		{Name: "AssociatedStationCount", XML: "associatedStationCount", Kind: xmltree.Scalar},
		{Name: "UsedStationCount", XML: "usedStationCount", Kind: xmltree.Scalar},
		{Name: "DepthPhaseCount", XML: "depthPhaseCount", Kind: xmltree.Scalar},
		{Name: "StandardError", XML: "standardError", Kind: xmltree.Scalar},
		{Name: "AzimuthalGap", XML: "azimuthalGap", Kind: xmltree.Scalar},
		{Name: "SecondaryAzimuthalGap", XML: "secondaryAzimuthalGap", Kind: xmltree.Scalar},
		{Name: "GroundTruthLevel", XML: "groundTruthLevel", Kind: xmltree.Scalar},
		{Name: "MinimumDistance", XML: "minimumDistance", Kind: xmltree.Scalar},
		{Name: "MaximumDistance", XML: "maximumDistance", Kind: xmltree.Scalar},
		{Name: "MedianDistance", XML: "medianDistance", Kind: xmltree.Scalar},
	}
}

// OriginUncertainty describes the location error, either as a
// horizontal uncertainty, an error ellipse, or a confidence ellipsoid.
type OriginUncertainty struct {
	xmltree.Extras
	HorizontalUncertainty           *float64
	MinHorizontalUncertainty        *float64
	MaxHorizontalUncertainty        *float64
	AzimuthMaxHorizontalUncertainty *float64
	ConfidenceEllipsoid             *ConfidenceEllipsoid
	PreferredDescription            string
}

func (u *OriginUncertainty) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "HorizontalUncertainty", XML: "horizontalUncertainty", Kind: xmltree.Scalar},
		{Name: "MinHorizontalUncertainty", XML: "minHorizontalUncertainty", Kind: xmltree.Scalar},
		{Name: "MaxHorizontalUncertainty", XML: "maxHorizontalUncertainty", Kind: xmltree.Scalar},
		{Name: "AzimuthMaxHorizontalUncertainty", XML: "azimuthMaxHorizontalUncertainty", Kind: xmltree.Scalar},
		{Name: "ConfidenceEllipsoid", XML: "confidenceEllipsoid", Kind: xmltree.Nested},
		{Name: "PreferredDescription", XML: "preferredDescription", Kind: xmltree.Enum},
	}
}

// ConfidenceEllipsoid is a 3D location error ellipsoid. Axis lengths
// are metres, angles degrees.
type ConfidenceEllipsoid struct {
	xmltree.Extras
	SemiMajorAxisLength        float64
	SemiMinorAxisLength        float64
	SemiIntermediateAxisLength float64
	MajorAxisPlunge            float64
	MajorAxisAzimuth           float64
	MajorAxisRotation          float64
}

func (e *ConfidenceEllipsoid) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "SemiMajorAxisLength", XML: "semiMajorAxisLength", Kind: xmltree.Scalar},
		{Name: "SemiMinorAxisLength", XML: "semiMinorAxisLength", Kind: xmltree.Scalar},
		{Name: "SemiIntermediateAxisLength", XML: "semiIntermediateAxisLength", Kind: xmltree.Scalar},
		{Name: "MajorAxisPlunge", XML: "majorAxisPlunge", Kind: xmltree.Scalar},
		{Name: "MajorAxisAzimuth", XML: "majorAxisAzimuth", Kind: xmltree.Scalar},
		{Name: "MajorAxisRotation", XML: "majorAxisRotation", Kind: xmltree.Scalar},
	}
}

// Arrival associates a Pick with the Origin that owns it. Distance and
// azimuth are degrees.
type Arrival struct {
	xmltree.Extras
	PublicID                   string
	PickID                     string
	Phase                      *Phase
	TimeCorrection             *float64
	Azimuth                    *float64
	Distance                   *float64
	TakeoffAngle               *float64
	TimeResidual               *float64
	HorizontalSlownessResidual *float64
	BackazimuthResidual        *float64
	TimeWeight                 *float64
	HorizontalSlownessWeight   *float64
	BackazimuthWeight          *float64
	EarthModelID               string
	Comments                   []*Comment
	CreationInfo               *CreationInfo
}

func (a *Arrival) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "PickID", XML: "pickID", Kind: xmltree.Scalar},
		{Name: "Phase", XML: "phase", Kind: xmltree.Nested},
		{Name: "TimeCorrection", XML: "timeCorrection", Kind: xmltree.Scalar},
		{Name: "Azimuth", XML: "azimuth", Kind: xmltree.Scalar},
		{Name: "Distance", XML: "distance", Kind: xmltree.Scalar},
		{Name: "TakeoffAngle", XML: "takeoffAngle", Kind: xmltree.Scalar},
		{Name: "TimeResidual", XML: "timeResidual", Kind: xmltree.Scalar},
		{Name: "HorizontalSlownessResidual", XML: "horizontalSlownessResidual", Kind: xmltree.Scalar},
		{Name: "BackazimuthResidual", XML: "backazimuthResidual", Kind: xmltree.Scalar},
		{Name: "TimeWeight", XML: "timeWeight", Kind: xmltree.Scalar},
		{Name: "HorizontalSlownessWeight", XML: "horizontalSlownessWeight", Kind: xmltree.Scalar},
		{Name: "BackazimuthWeight", XML: "backazimuthWeight", Kind: xmltree.Scalar},
		{Name: "EarthModelID", XML: "earthModelID", Kind: xmltree.Scalar},
		{Name: "Comments", XML: "comment", Kind: xmltree.Repeated},
		{Name: "CreationInfo", XML: "creationInfo", Kind: xmltree.Nested},
	}
}
