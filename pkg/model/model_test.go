package model_test

import (
	"testing"

	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
	"github.com/quakepy/qcat/pkg/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func testEvent(id string) *model.Event {
	ot := qtime.Date(2005, 6, 15, 12, 30, 15.5)
	org := &model.Origin{
		PublicID:  id + "/origin/1",
		Time:      model.NewTimeQuantity(ot),
		Latitude:  model.NewRealQuantity(20.3),
		Longitude: model.NewRealQuantity(10.5),
		Depth:     model.NewRealQuantity(10000),
		Quality: &model.OriginQuality{
			UsedPhaseCount: ptr(12),
			AzimuthalGap:   ptr(115.0),
		},
	}
	mag := &model.Magnitude{
		PublicID: id + "/magnitude/1",
		Mag:      model.NewRealQuantity(5.1),
		Type:     "ML",
		OriginID: org.PublicID,
	}
	ev := &model.Event{
		PublicID:             id,
		Type:                 model.TypeEarthquake,
		PreferredOriginID:    org.PublicID,
		PreferredMagnitudeID: mag.PublicID,
	}
	ev.Origins = append(ev.Origins, org)
	ev.Magnitudes = append(ev.Magnitudes, mag)
	return ev
}

func TestEventRoundTrip(t *testing.T) {
	root := &model.EventParameters{PublicID: "smi:local/catalog/1"}
	root.AddEvent(testEvent("smi:local/event/1"))
	root.Events[0].Descriptions = append(root.Events[0].Descriptions,
		&model.EventDescription{Text: "Northern Italy", Type: "region name"})

	el, err := xmltree.Marshal(root, "eventParameters", nil)
	require.NoError(t, err)

	got := &model.EventParameters{}
	require.NoError(t, xmltree.Unmarshal(got, el, nil))

	require.Len(t, got.Events, 1)
	ev := got.Events[0]
	assert.Equal(t, model.TypeEarthquake, ev.Type)
	org := ev.PreferredOrigin()
	require.NotNil(t, org)
	assert.InDelta(t, 20.3, org.Latitude.Value, 1e-12)
	assert.InDelta(t, 10000, org.Depth.Value, 1e-12)
	require.NotNil(t, org.Quality)
	require.NotNil(t, org.Quality.UsedPhaseCount)
	assert.Equal(t, 12, *org.Quality.UsedPhaseCount)
	mag := ev.PreferredMagnitude()
	require.NotNil(t, mag)
	assert.Equal(t, "ML", mag.Type)

	assert.True(t, xmltree.Equal(root, got, nil))
}

func TestEqualIgnoresIdentifiers(t *testing.T) {
	a := testEvent("smi:local/event/1")
	b := testEvent("smi:local/event/99")
	// references differ with the identifiers, so clear them; only the
	// identifier attributes themselves are exempt from comparison
	a.PreferredOriginID, b.PreferredOriginID = "", ""
	a.PreferredMagnitudeID, b.PreferredMagnitudeID = "", ""
	a.Magnitudes[0].OriginID, b.Magnitudes[0].OriginID = "", ""
	assert.True(t, xmltree.Equal(a, b, nil))

	b.Magnitudes[0].Mag.Value = 5.2
	assert.False(t, xmltree.Equal(a, b, nil))
}

func TestPreferredFallback(t *testing.T) {
	ev := testEvent("smi:local/event/1")
	ev.PreferredOriginID = "smi:local/origin/dangling"
	assert.Same(t, ev.Origins[0], ev.PreferredOrigin())

	ev.Origins = nil
	assert.Nil(t, ev.PreferredOrigin())
}

func TestMagnitudesForOrigin(t *testing.T) {
	ev := testEvent("smi:local/event/1")
	second := &model.Magnitude{
		PublicID: "smi:local/magnitude/2",
		Mag:      model.NewRealQuantity(4.9),
		Type:     "MD",
		OriginID: ev.Origins[0].PublicID,
	}
	ev.Magnitudes = append(ev.Magnitudes, second)
	other := &model.Magnitude{
		PublicID: "smi:local/magnitude/3",
		OriginID: "smi:local/origin/other",
	}
	ev.Magnitudes = append(ev.Magnitudes, other)

	got := ev.MagnitudesForOrigin(ev.Origins[0])
	require.Len(t, got, 2)
	assert.Equal(t, "ML", got[0].Type)
	assert.Equal(t, "MD", got[1].Type)
}

func TestTensorRoundTrip(t *testing.T) {
	fm := &model.FocalMechanism{
		PublicID: "smi:local/fm/1",
		MomentTensors: []*model.MomentTensor{{
			PublicID:     "smi:local/mt/1",
			ScalarMoment: model.NewRealQuantity(1.283e23),
			Tensor: &model.Tensor{
				Mrr: model.NewRealQuantityErr(-1.1e22, 2.0e21),
				Mtt: model.NewRealQuantity(3.5e22),
				Mpp: model.NewRealQuantity(-2.4e22),
				Mrt: model.NewRealQuantity(1.0e21),
				Mrp: model.NewRealQuantity(-5.0e21),
				Mtp: model.NewRealQuantity(9.9e21),
			},
		}},
	}

	el, err := xmltree.Marshal(fm, "focalMechanism", nil)
	require.NoError(t, err)
	got := &model.FocalMechanism{}
	require.NoError(t, xmltree.Unmarshal(got, el, nil))

	require.Len(t, got.MomentTensors, 1)
	ten := got.MomentTensors[0].Tensor
	require.NotNil(t, ten)
	assert.InDelta(t, -1.1e22, ten.Mrr.Value, 1e10)
	require.NotNil(t, ten.Mrr.Uncertainty)
	assert.InDelta(t, 2.0e21, *ten.Mrr.Uncertainty, 1e10)
	assert.True(t, xmltree.Equal(fm, got, nil))
}

func TestRemoveEvent(t *testing.T) {
	root := &model.EventParameters{}
	for _, id := range []string{"a", "b", "c"} {
		root.AddEvent(&model.Event{PublicID: "smi:local/event/" + id})
	}
	root.RemoveEvent(1)
	require.Len(t, root.Events, 2)
	assert.Equal(t, "smi:local/event/a", root.Events[0].PublicID)
	assert.Equal(t, "smi:local/event/c", root.Events[1].PublicID)
}
