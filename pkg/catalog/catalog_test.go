package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/config"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() *catalog.Catalog {
	return catalog.New(config.New().Catalog)
}

func addEvent(c *catalog.Catalog, lat, lon, depthM, mag float64,
	t qtime.Time) *model.Event {

	ids := c.IDs()
	local := t.ISO(0)
	org := &model.Origin{
		PublicID:  ids.ID("origin", local),
		Time:      model.NewTimeQuantity(t),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
		Depth:     model.NewRealQuantity(depthM),
	}
	m := &model.Magnitude{
		PublicID: ids.ID("magnitude", local),
		Mag:      model.NewRealQuantity(mag),
		Type:     "ML",
		OriginID: org.PublicID,
	}
	ev := &model.Event{
		PublicID:             ids.ID("event", local),
		PreferredOriginID:    org.PublicID,
		PreferredMagnitudeID: m.PublicID,
	}
	ev.Origins = append(ev.Origins, org)
	ev.Magnitudes = append(ev.Magnitudes, m)
	c.AddEvent(ev)
	return ev
}

func TestXMLRoundTrip(t *testing.T) {
	c := newCatalog()
	addEvent(c, 45.9, 13.6, 8000, 3.4, qtime.Date(2004, 7, 12, 13, 4, 5.5))
	addEvent(c, 46.1, 12.9, 12000, 4.1, qtime.Date(2005, 1, 2, 3, 4, 5.0))

	var buf bytes.Buffer
	require.NoError(t, c.WriteXML(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "eventParameters")

	got := newCatalog()
	require.NoError(t, got.ReadXML(&buf))
	require.Equal(t, 2, got.Size())
	org := got.Events()[0].PreferredOrigin()
	require.NotNil(t, org)
	assert.InDelta(t, 45.9, org.Latitude.Value, 1e-9)
	assert.InDelta(t, 8000, org.Depth.Value, 1e-9)
}

func TestReadXMLBareEventParameters(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<eventParameters publicID="smi:local/catalog/x">
  <event publicID="smi:local/event/1">
    <type>earthquake</type>
  </event>
</eventParameters>`
	c := newCatalog()
	require.NoError(t, c.ReadXML(strings.NewReader(doc)))
	require.Equal(t, 1, c.Size())
	assert.Equal(t, model.TypeEarthquake, c.Events()[0].Type)
}

func TestReadXMLMissingDeclaration(t *testing.T) {
	c := newCatalog()
	err := c.ReadXML(strings.NewReader("<quakeml></quakeml>"))
	assert.Error(t, err)
}

func TestReadXMLWrongRoot(t *testing.T) {
	c := newCatalog()
	err := c.ReadXML(strings.NewReader(
		`<?xml version="1.0"?><bulletin></bulletin>`))
	assert.Error(t, err)
}

func TestReadXMLKeepsForeignRootAttrs(t *testing.T) {
	doc := `<?xml version="1.0"?>
<quakeml xmlns="http://quakeml.org/xmlns/bed/1.2" catalog="regional">
  <eventParameters publicID="smi:local/catalog/x"/>
</quakeml>`
	c := newCatalog()
	require.NoError(t, c.ReadXML(strings.NewReader(doc)))

	var buf bytes.Buffer
	require.NoError(t, c.WriteXML(&buf))
	assert.Contains(t, buf.String(), `catalog="regional"`)
}

func TestTimeSpan(t *testing.T) {
	c := newCatalog()
	addEvent(c, 45, 13, 5000, 3.0, qtime.Date(2000, 1, 1, 0, 0, 0))
	addEvent(c, 45, 13, 5000, 3.0, qtime.Date(2001, 1, 1, 0, 0, 0))

	start, end, years, err := c.TimeSpan()
	require.NoError(t, err)
	assert.Equal(t, 2000, start.Std().Year())
	assert.Equal(t, 2001, end.Std().Year())
	assert.InDelta(t, 366.0/365.25, years, 1e-9)
}

func TestTimeSpanEmpty(t *testing.T) {
	c := newCatalog()
	_, _, _, err := c.TimeSpan()
	assert.Error(t, err)
}

func TestMagnitudeRange(t *testing.T) {
	c := newCatalog()
	addEvent(c, 45, 13, 5000, 2.2, qtime.Date(2000, 1, 1, 0, 0, 0))
	addEvent(c, 45, 13, 5000, 4.7, qtime.Date(2001, 1, 1, 0, 0, 0))
	min, max := c.MagnitudeRange()
	assert.InDelta(t, 2.2, min, 1e-12)
	assert.InDelta(t, 4.7, max, 1e-12)
}

func TestIDGenDeterministic(t *testing.T) {
	a := catalog.NewIDGen(catalog.IDStyleFull, "example")
	b := catalog.NewIDGen(catalog.IDStyleFull, "example")
	assert.Equal(t, a.ID("origin", "42"), b.ID("origin", "42"))
	assert.Equal(t, "smi:example/origin/42", a.ID("origin", "42"))

	u := catalog.NewIDGen(catalog.IDStyleUUID, "example")
	v := catalog.NewIDGen(catalog.IDStyleUUID, "example")
	assert.Equal(t, u.ID("event", "x"), v.ID("event", "x"))
	assert.NotEqual(t, u.ID("event", "x"), u.ID("event", "y"))

	n := catalog.NewIDGen(catalog.IDStyleNumeric, "example")
	assert.Equal(t, "1", n.ID("event", "x"))
	assert.Equal(t, "2", n.ID("event", "x"))

	s := catalog.NewIDGen(catalog.IDStyleShort, "example")
	assert.Equal(t, "x", s.ID("event", "x"))
}
