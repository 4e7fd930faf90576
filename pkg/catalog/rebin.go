package catalog

import "github.com/quakepy/qcat/pkg/qmath"

// Rebin quantizes magnitude values in place to the nearest multiple of
// binsize, rounding halves away from zero. With allOrigins set every
// magnitude of every event is rebinned; otherwise only the magnitudes
// computed from each event's preferred origin are touched. A
// non-positive binsize is a no-op.
func (c *Catalog) Rebin(binsize float64, allOrigins bool) {
	if binsize <= 0 {
		return
	}
	for _, ev := range c.Root.Events {
		if allOrigins {
			for _, mag := range ev.Magnitudes {
				if mag.Mag != nil {
					mag.Mag.Value = qmath.Rebin(mag.Mag.Value, binsize)
				}
			}
			continue
		}
		org := ev.PreferredOrigin()
		if org == nil {
			continue
		}
		for _, mag := range ev.MagnitudesForOrigin(org) {
			if mag.Mag != nil {
				mag.Mag.Value = qmath.Rebin(mag.Mag.Value, binsize)
			}
		}
	}
}
