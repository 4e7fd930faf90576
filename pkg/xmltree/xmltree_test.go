package xmltree_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/quakepy/qcat/pkg/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type measure struct {
	xmltree.Extras
	Value       float64
	Uncertainty *float64
}

func (m *measure) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Value", XML: "value", Kind: xmltree.Scalar},
		{Name: "Uncertainty", XML: "uncertainty", Kind: xmltree.Scalar},
	}
}

type sample struct {
	xmltree.Extras
	PublicID string
	Kind     string
	Depth    *measure
	Time     *qtime.Time
	Picks    []*pick
	Comment  string
}

func (s *sample) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "PublicID", XML: "publicID", Kind: xmltree.Attribute, ID: true},
		{Name: "Kind", XML: "type", Kind: xmltree.Enum},
		{Name: "Depth", XML: "depth", Kind: xmltree.Nested},
		{Name: "Time", XML: "time", Kind: xmltree.Scalar},
		{Name: "Picks", XML: "pick", Kind: xmltree.Repeated},
		{Name: "Comment", XML: "comment", Kind: xmltree.Scalar},
	}
}

type pick struct {
	xmltree.Extras
	Phase  string
	Weight *int
}

func (p *pick) Descriptors() []xmltree.Field {
	return []xmltree.Field{
		{Name: "Phase", XML: "phase", Kind: xmltree.Scalar},
		{Name: "Weight", XML: "weight", Kind: xmltree.Scalar},
	}
}

func newSample() *sample {
	unc := 120.5
	w := 2
	tm := qtime.Date(2005, 6, 15, 12, 30, 15.5)
	return &sample{
		PublicID: "smi:local/event/1",
		Kind:     "earthquake",
		Depth:    &measure{Value: 10000, Uncertainty: &unc},
		Time:     &tm,
		Picks: []*pick{
			{Phase: "P", Weight: &w},
			{Phase: "S"},
		},
		Comment: "shallow",
	}
}

func TestMarshalOrder(t *testing.T) {
	el, err := xmltree.Marshal(newSample(), "event", nil)
	require.NoError(t, err)

	assert.Equal(t, "event", el.Tag)
	attr := el.SelectAttr("publicID")
	require.NotNil(t, attr)
	assert.Equal(t, "smi:local/event/1", attr.Value)

	var tags []string
	for _, ch := range el.ChildElements() {
		tags = append(tags, ch.Tag)
	}
	// scalars and enums before nested, nested before repeated
	assert.Equal(t,
		[]string{"time", "comment", "type", "depth", "pick", "pick"}, tags)
}

func TestMarshalScalars(t *testing.T) {
	el, err := xmltree.Marshal(newSample(), "event", nil)
	require.NoError(t, err)

	assert.Equal(t, "2005-06-15T12:30:15.500000Z",
		el.SelectElement("time").Text())
	depth := el.SelectElement("depth")
	require.NotNil(t, depth)
	assert.Equal(t, "10000", depth.SelectElement("value").Text())
	assert.Equal(t, "120.5", depth.SelectElement("uncertainty").Text())
}

func TestMarshalSkipsUnset(t *testing.T) {
	s := &sample{PublicID: "smi:local/event/2"}
	el, err := xmltree.Marshal(s, "event", nil)
	require.NoError(t, err)
	assert.Empty(t, el.ChildElements())
}

func TestRoundTrip(t *testing.T) {
	orig := newSample()
	el, err := xmltree.Marshal(orig, "event", nil)
	require.NoError(t, err)

	got := &sample{}
	err = xmltree.Unmarshal(got, el, nil)
	require.NoError(t, err)

	assert.Equal(t, orig.PublicID, got.PublicID)
	assert.Equal(t, orig.Kind, got.Kind)
	require.NotNil(t, got.Depth)
	assert.InDelta(t, 10000, got.Depth.Value, 1e-12)
	require.NotNil(t, got.Depth.Uncertainty)
	assert.InDelta(t, 120.5, *got.Depth.Uncertainty, 1e-12)
	require.NotNil(t, got.Time)
	assert.True(t, orig.Time.Equal(*got.Time, 0))
	require.Len(t, got.Picks, 2)
	assert.Equal(t, "P", got.Picks[0].Phase)
	require.NotNil(t, got.Picks[0].Weight)
	assert.Equal(t, 2, *got.Picks[0].Weight)
	assert.Nil(t, got.Picks[1].Weight)

	assert.True(t, xmltree.Equal(orig, got, nil))
}

func TestForeignPreserved(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(`<event publicID="smi:local/event/3">
  <type>earthquake</type>
  <myns:custom xmlns:myns="http://example.org/ns">payload</myns:custom>
</event>`)
	require.NoError(t, err)

	s := &sample{}
	err = xmltree.Unmarshal(s, doc.Root(), nil)
	require.NoError(t, err)
	require.Len(t, s.Foreign(), 1)
	assert.Equal(t, "custom", s.Foreign()[0].Tag)

	el, err := xmltree.Marshal(s, "event", nil)
	require.NoError(t, err)
	found := false
	for _, ch := range el.ChildElements() {
		if ch.Tag == "custom" {
			found = true
			assert.Equal(t, "payload", ch.Text())
		}
	}
	assert.True(t, found, "foreign element survives round trip")
}

func TestUnmarshalExtensions(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(
		`<pick><phase>P</phase><weight>1</weight></pick>`)
	require.NoError(t, err)

	// onset is not declared on pick; an extension descriptor maps it
	// onto the Phase field of a second object for this call only.
	p := &pick{}
	err = xmltree.Unmarshal(p, doc.Root(), nil)
	require.NoError(t, err)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 1, *p.Weight)

	doc2 := etree.NewDocument()
	err = doc2.ReadFromString(`<pick><onset>impulsive</onset></pick>`)
	require.NoError(t, err)

	q := &pick{}
	ext := []xmltree.Field{
		{Name: "Phase", XML: "onset", Kind: xmltree.Scalar},
	}
	err = xmltree.Unmarshal(q, doc2.Root(), ext)
	require.NoError(t, err)
	assert.Equal(t, "impulsive", q.Phase)
	assert.Empty(t, q.Foreign())
}

func TestUnmarshalCoercionError(t *testing.T) {
	doc := etree.NewDocument()
	err := doc.ReadFromString(
		`<depth><value>not-a-number</value></depth>`)
	require.NoError(t, err)

	m := &measure{}
	err = xmltree.Unmarshal(m, doc.Root(), nil)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		msg    string
		mutate func(*sample)
		equal  bool
	}{
		{"identical", func(s *sample) {}, true},
		{"different id still equal",
			func(s *sample) { s.PublicID = "smi:local/event/other" }, true},
		{"different enum",
			func(s *sample) { s.Kind = "explosion" }, false},
		{"float within epsilon",
			func(s *sample) { s.Depth.Value = 10000 + 1e-10 }, true},
		{"float beyond epsilon",
			func(s *sample) { s.Depth.Value = 10001 }, false},
		{"missing nested",
			func(s *sample) { s.Depth = nil }, false},
		{"different list length",
			func(s *sample) { s.Picks = s.Picks[:1] }, false},
		{"different list content",
			func(s *sample) { s.Picks[0].Phase = "Pn" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			a := newSample()
			b := newSample()
			tt.mutate(a)
			assert.Equal(t, tt.equal, xmltree.Equal(b, a, nil), tt.msg)
		})
	}
}

func TestEqualLeftUnsetSkipped(t *testing.T) {
	a := newSample()
	a.Comment = ""
	b := newSample()
	assert.True(t, xmltree.Equal(a, b, nil),
		"unset left scalar is skipped")
	assert.False(t, xmltree.Equal(b, a, nil),
		"set left against unset right differs")
}

func TestEqualTypeMismatch(t *testing.T) {
	assert.False(t, xmltree.Equal(&measure{}, &pick{}, nil))
}
