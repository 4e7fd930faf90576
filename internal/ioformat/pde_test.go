package ioformat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/qtime"
)

func pdeLine() string {
	return fixedLine(90,
		col{0, "GS"}, col{6, "2005"}, col{12, "01"}, col{14, "01"},
		col{16, "01"}, col{18, "20"}, col{20, "05.4"}, col{25, "GS"},
		col{27, "13.780"}, col{34, "-88.780"}, col{42, "193"},
		col{47, "D"}, col{48, "26"}, col{50, "1.10"},
		col{54, "5.0"}, col{57, "54"},
		col{59, "4.8"}, col{63, "12"},
		col{65, "5.40"}, col{69, "MW"}, col{71, "HRV"},
		col{76, "5.30"}, col{80, "ML"}, col{82, "PAS"},
		col{87, "104"},
	)
}

func TestImportPDE(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportPDE(cat, strings.NewReader(pdeLine()+"\n"), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	ori := ev.PreferredOrigin()
	require.NotNil(t, ori)
	assert.InDelta(t, 13.780, ori.Latitude.Value, 1e-9)
	assert.InDelta(t, -88.780, ori.Longitude.Value, 1e-9)
	require.NotNil(t, ori.Depth)
	assert.InDelta(t, 193000.0, ori.Depth.Value, 1e-6)
	want := qtime.Date(2005, time.January, 1, 1, 20, 5.4)
	assert.True(t, ori.Time.Value.Equal(want, 1e-6))

	assert.Equal(t, "GS", ori.CreationInfo.AgencyID)
	assert.Equal(t, "constrained by depth phases", ori.DepthType)
	require.Len(t, ori.Comments, 1)
	assert.Equal(t, "PDE:depth_control_designator=D", ori.Comments[0].Text)
	assert.Equal(t, 26, *ori.Quality.DepthPhaseCount)
	assert.InDelta(t, 1.10, *ori.Quality.StandardError, 1e-9)

	require.Len(t, ev.Descriptions, 1)
	assert.Equal(t, "104", ev.Descriptions[0].Text)
	assert.Equal(t, "Flinn-Engdahl region", ev.Descriptions[0].Type)
}

func TestImportPDEMagnitudeSlots(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportPDE(cat, strings.NewReader(pdeLine()+"\n"), nil))
	ev := cat.Events()[0]

	require.Len(t, ev.Magnitudes, 4)

	mb := ev.Magnitudes[0]
	assert.Equal(t, "mb", mb.Type)
	assert.InDelta(t, 5.0, mb.Mag.Value, 1e-9)
	assert.Equal(t, "NEIS", mb.CreationInfo.AgencyID)
	assert.Equal(t, 54, *mb.StationCount)

	ms := ev.Magnitudes[1]
	assert.Equal(t, "Ms", ms.Type)
	assert.InDelta(t, 4.8, ms.Mag.Value, 1e-9)
	assert.Equal(t, 12, *ms.StationCount)

	c1 := ev.Magnitudes[2]
	assert.Equal(t, "MW", c1.Type)
	assert.InDelta(t, 5.40, c1.Mag.Value, 1e-9)
	assert.Equal(t, "HRV", c1.CreationInfo.AgencyID)

	c2 := ev.Magnitudes[3]
	assert.Equal(t, "ML", c2.Type)
	assert.Equal(t, "PAS", c2.CreationInfo.AgencyID)

	// The first populated slot wins.
	assert.Equal(t, mb.PublicID, ev.PreferredMagnitudeID)
}

func TestImportPDEDefaults(t *testing.T) {
	// Minutes, seconds and depth are optional.
	in := fixedLine(42,
		col{6, "2005"}, col{12, "01"}, col{14, "01"}, col{16, "07"},
		col{27, "13.780"}, col{34, "-88.780"},
	)

	cat := newCatalog()
	require.NoError(t, ioformat.ImportPDE(cat, strings.NewReader(in+"\n"), nil))
	require.Equal(t, 1, cat.Size())

	ori := cat.Events()[0].PreferredOrigin()
	assert.Nil(t, ori.Depth)
	want := qtime.Date(2005, time.January, 1, 7, 0, 0)
	assert.True(t, ori.Time.Value.Equal(want, 1e-6))
	assert.Empty(t, cat.Events()[0].Magnitudes)
}

func TestImportPDESkipsShortAndBadLines(t *testing.T) {
	in := strings.Join([]string{
		"short",
		fixedLine(45, col{6, "2005"}, col{12, "xx"}, col{27, "13.780"},
			col{34, "-88.780"}, col{42, "10"}),
		pdeLine(),
	}, "\n")

	cat := newCatalog()
	require.NoError(t, ioformat.ImportPDE(cat, strings.NewReader(in), nil))
	assert.Equal(t, 1, cat.Size())
}
