// Package catalog wraps one EventParameters tree with whole-document
// XML reading and writing, event filtering (cut), magnitude
// quantization (rebin), and derived views.
//
// A Catalog exclusively owns its tree; no entity is shared between two
// live catalogs. All operations are synchronous and single-threaded,
// since identifier stability and sequential record numbering depend on
// strict processing order.
package catalog

import (
	"math"

	"github.com/quakepy/qcat/pkg/config"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/quakepy/qcat/pkg/xmltree"
)

// DaysPerYear converts a time span in days to Julian years.
const DaysPerYear = 365.25

// Catalog owns one event tree.
type Catalog struct {
	Root *model.EventParameters

	ids       *IDGen
	treeOpts  *xmltree.Options
	rootAttrs []attr
}

type attr struct {
	space, key, value string
}

// New returns an empty catalog configured per cfg.
func New(cfg config.CatalogConfig) *Catalog {
	return &Catalog{
		Root: &model.EventParameters{},
		ids:  NewIDGen(cfg.IDStyle, cfg.AuthorityID),
		treeOpts: &xmltree.Options{
			SecondsDigits: cfg.SecondsDigits,
		},
	}
}

// IDs exposes the catalog's identifier generator, used by importers so
// re-importing the same file yields the same identifiers.
func (c *Catalog) IDs() *IDGen { return c.ids }

// TreeOpts returns the serialization options the catalog was
// configured with.
func (c *Catalog) TreeOpts() *xmltree.Options { return c.treeOpts }

// Events returns the owned event list.
func (c *Catalog) Events() []*model.Event { return c.Root.Events }

// Size returns the number of events.
func (c *Catalog) Size() int { return len(c.Root.Events) }

// AddEvent appends ev to the catalog.
func (c *Catalog) AddEvent(ev *model.Event) { c.Root.AddEvent(ev) }

// TimeSpan scans the preferred origin of every event and returns the
// earliest and latest origin times plus the span between them in
// Julian years. Events without a timed origin are ignored.
func (c *Catalog) TimeSpan() (start, end qtime.Time, years float64, err error) {
	found := false
	for _, ev := range c.Root.Events {
		org := ev.PreferredOrigin()
		if org == nil || org.Time == nil || org.Time.Value == nil {
			continue
		}
		t := *org.Time.Value
		if !found {
			start, end = t, t
			found = true
			continue
		}
		if t.Before(start) {
			start = t
		}
		if t.After(end) {
			end = t
		}
	}
	if !found {
		return start, end, 0, timeSpanError(c.Size())
	}
	days := end.Std().Sub(start.Std()).Hours() / 24.0
	return start, end, days / DaysPerYear, nil
}

// MagnitudeRange returns the smallest and largest preferred magnitude
// values. NaN is returned for both when no event carries a magnitude.
func (c *Catalog) MagnitudeRange() (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, ev := range c.Root.Events {
		mag := ev.PreferredMagnitude()
		if mag == nil || mag.Mag == nil {
			continue
		}
		v := mag.Mag.Value
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}
