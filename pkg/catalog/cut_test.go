package catalog_test

import (
	"math"
	"testing"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func cutFixture() *catalog.Catalog {
	c := newCatalog()
	addEvent(c, 44.0, 11.0, 5000, 2.0, qtime.Date(2000, 3, 1, 0, 0, 0))
	addEvent(c, 45.0, 12.0, 10000, 3.0, qtime.Date(2001, 6, 1, 0, 0, 0))
	addEvent(c, 46.0, 13.0, 20000, 4.0, qtime.Date(2002, 9, 1, 0, 0, 0))
	return c
}

func TestCut(t *testing.T) {
	tests := []struct {
		msg     string
		filter  catalog.CutFilter
		left    int
		removed int
	}{
		{"no bounds", catalog.CutFilter{}, 3, 0},
		{"min magnitude inclusive",
			catalog.CutFilter{MinMag: ptr(3.0)}, 2, 1},
		{"min magnitude exclusive",
			catalog.CutFilter{MinMag: ptr(3.0), MinMagExcl: true}, 1, 2},
		{"max depth",
			catalog.CutFilter{MaxDepth: ptr(10000.0)}, 2, 1},
		{"latitude band",
			catalog.CutFilter{MinLat: ptr(44.5), MaxLat: ptr(45.5)}, 1, 2},
		{"time window",
			catalog.CutFilter{
				MinTime: ptr(qtime.Date(2001, 1, 1, 0, 0, 0)),
				MaxTime: ptr(qtime.Date(2002, 1, 1, 0, 0, 0)),
			}, 1, 2},
		{"geometry",
			catalog.CutFilter{
				GeometryTest: func(lat, lon float64) bool {
					return lon < 12.5
				},
			}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			c := cutFixture()
			removed := c.Cut(tt.filter)
			assert.Equal(t, tt.removed, removed, tt.msg)
			assert.Equal(t, tt.left, c.Size(), tt.msg)
		})
	}
}

func TestCutAnyOriginFails(t *testing.T) {
	c := cutFixture()
	// second origin far outside the latitude band drags the whole
	// event out even though the preferred origin passes
	ev := c.Events()[0]
	ev.Origins = append(ev.Origins, &model.Origin{
		PublicID: "smi:local/origin/outlier",
		Latitude: model.NewRealQuantity(60.0),
	})
	removed := c.Cut(catalog.CutFilter{
		MinLat: ptr(40.0), MaxLat: ptr(50.0),
	})
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, c.Size())
}

func TestCutNaN(t *testing.T) {
	c := newCatalog()
	addEvent(c, 45.0, 12.0, 10000, 3.0, qtime.Date(2001, 6, 1, 0, 0, 0))
	ev := addEvent(c, 46.0, 13.0, 20000, 4.0,
		qtime.Date(2002, 9, 1, 0, 0, 0))
	ev.Magnitudes[0].Mag.Value = math.NaN()

	// NaN passes bounds by default
	assert.Equal(t, 0, c.Cut(catalog.CutFilter{MinMag: ptr(1.0)}))
	require.Equal(t, 2, c.Size())

	// and fails them with RemoveNaN
	assert.Equal(t, 1, c.Cut(catalog.CutFilter{
		MinMag: ptr(1.0), RemoveNaN: true,
	}))
	assert.Equal(t, 1, c.Size())
}

func TestRebin(t *testing.T) {
	c := newCatalog()
	addEvent(c, 45, 12, 5000, 3.34, qtime.Date(2001, 1, 1, 0, 0, 0))
	addEvent(c, 45, 12, 5000, 3.35, qtime.Date(2001, 1, 2, 0, 0, 0))

	c.Rebin(0.1, false)
	assert.InDelta(t, 3.3, c.Events()[0].Magnitudes[0].Mag.Value, 1e-9)
	assert.InDelta(t, 3.4, c.Events()[1].Magnitudes[0].Mag.Value, 1e-9)
}

func TestRebinAllOrigins(t *testing.T) {
	c := newCatalog()
	ev := addEvent(c, 45, 12, 5000, 3.34, qtime.Date(2001, 1, 1, 0, 0, 0))
	other := &model.Magnitude{
		PublicID: "smi:local/magnitude/other",
		Mag:      model.NewRealQuantity(4.18),
		OriginID: "smi:local/origin/other",
	}
	ev.Magnitudes = append(ev.Magnitudes, other)

	c.Rebin(0.1, false)
	assert.InDelta(t, 4.18, other.Mag.Value, 1e-12,
		"magnitude of another origin untouched")

	c.Rebin(0.1, true)
	assert.InDelta(t, 4.2, other.Mag.Value, 1e-9)
}
