package catalog

import (
	"math"

	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
)

// CutFilter selects which events survive a Cut call. Nil bounds are
// not applied. Bounds are inclusive unless the paired Excl flag is
// set. Depth bounds are metres, consistent with stored depths.
//
// GeometryTest, when set, is called with each origin's latitude and
// longitude in degrees; returning false fails the origin. It covers
// point-in-polygon and point-in-grid tests supplied by the caller.
type CutFilter struct {
	MinLat, MaxLat         *float64
	MinLatExcl, MaxLatExcl bool

	MinLon, MaxLon         *float64
	MinLonExcl, MaxLonExcl bool

	MinDepth, MaxDepth         *float64
	MinDepthExcl, MaxDepthExcl bool

	MinTime, MaxTime         *qtime.Time
	MinTimeExcl, MaxTimeExcl bool

	MinMag, MaxMag         *float64
	MinMagExcl, MaxMagExcl bool

	GeometryTest func(lat, lon float64) bool

	// RemoveNaN fails any bounded field whose value is unset or NaN
	// instead of letting it pass.
	RemoveNaN bool
}

// Cut removes events from the catalog in place and returns how many
// were dropped. An event is dropped when any of its origins fails the
// spatial or temporal test, or any of its magnitudes fails the
// magnitude test; scanning is not limited to the preferred records.
//
// Iteration runs from the end of the event list backward so in-place
// removal does not perturb indices still to be visited.
func (c *Catalog) Cut(f CutFilter) int {
	removed := 0
	for i := len(c.Root.Events) - 1; i >= 0; i-- {
		if !c.eventPasses(c.Root.Events[i], f) {
			c.Root.RemoveEvent(i)
			removed++
		}
	}
	return removed
}

func (c *Catalog) eventPasses(ev *model.Event, f CutFilter) bool {
	for _, org := range ev.Origins {
		if !originPasses(org, f) {
			return false
		}
	}
	for _, mag := range ev.Magnitudes {
		if !magnitudePasses(mag, f) {
			return false
		}
	}
	return true
}

func originPasses(org *model.Origin, f CutFilter) bool {
	lat := quantityValue(org.Latitude)
	lon := quantityValue(org.Longitude)
	depth := quantityValue(org.Depth)

	if !passLow(lat, f.MinLat, f.MinLatExcl, f.RemoveNaN) ||
		!passHigh(lat, f.MaxLat, f.MaxLatExcl, f.RemoveNaN) {
		return false
	}
	if !passLow(lon, f.MinLon, f.MinLonExcl, f.RemoveNaN) ||
		!passHigh(lon, f.MaxLon, f.MaxLonExcl, f.RemoveNaN) {
		return false
	}
	if !passLow(depth, f.MinDepth, f.MinDepthExcl, f.RemoveNaN) ||
		!passHigh(depth, f.MaxDepth, f.MaxDepthExcl, f.RemoveNaN) {
		return false
	}

	if f.MinTime != nil || f.MaxTime != nil {
		if org.Time == nil || org.Time.Value == nil {
			if f.RemoveNaN {
				return false
			}
		} else {
			t := *org.Time.Value
			if f.MinTime != nil {
				if t.Before(*f.MinTime) {
					return false
				}
				if f.MinTimeExcl && !t.After(*f.MinTime) {
					return false
				}
			}
			if f.MaxTime != nil {
				if t.After(*f.MaxTime) {
					return false
				}
				if f.MaxTimeExcl && !t.Before(*f.MaxTime) {
					return false
				}
			}
		}
	}

	if f.GeometryTest != nil {
		if math.IsNaN(lat) || math.IsNaN(lon) {
			return !f.RemoveNaN
		}
		if !f.GeometryTest(lat, lon) {
			return false
		}
	}
	return true
}

func magnitudePasses(mag *model.Magnitude, f CutFilter) bool {
	v := math.NaN()
	if mag.Mag != nil {
		v = mag.Mag.Value
	}
	return passLow(v, f.MinMag, f.MinMagExcl, f.RemoveNaN) &&
		passHigh(v, f.MaxMag, f.MaxMagExcl, f.RemoveNaN)
}

func quantityValue(q *model.RealQuantity) float64 {
	if q == nil {
		return math.NaN()
	}
	return q.Value
}

func passLow(v float64, bound *float64, excl, removeNaN bool) bool {
	if bound == nil {
		return true
	}
	if math.IsNaN(v) {
		return !removeNaN
	}
	if excl {
		return v > *bound
	}
	return v >= *bound
}

func passHigh(v float64, bound *float64, excl, removeNaN bool) bool {
	if bound == nil {
		return true
	}
	if math.IsNaN(v) {
		return !removeNaN
	}
	if excl {
		return v < *bound
	}
	return v <= *bound
}
