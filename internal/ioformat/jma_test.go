package ioformat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
)

func jmaHypoLine(source string, cols ...col) string {
	base := []col{
		{0, source},
		{1, "2004"}, {5, "01"}, {7, "01"}, {9, "10"}, {11, "28"},
		{13, "59"}, {15, "26"},
		{17, "00"}, {19, "15"},
		{22, "35"}, {24, "12"}, {26, "34"}, {28, "00"}, {30, "12"},
		{33, "139"}, {36, "45"}, {38, "67"}, {40, "00"}, {42, "24"},
		{44, "012"}, {47, "00"}, {49, "0"}, {50, "50"},
		{52, "52"}, {54, "J"}, {55, "48"}, {57, "D"},
		{60, "1"},
		{68, "KANTO DISTRICT"}, {92, "123"},
	}
	return fixedLine(95, append(base, cols...)...)
}

func jmaPhaseLine() string {
	return fixedLine(40,
		col{0, "_"}, col{1, "TOKYO"}, col{13, "01"},
		col{15, "P"}, col{19, "10"}, col{21, "29"}, col{23, "10"}, col{25, "50"},
		col{27, "S"}, col{31, "29"}, col{33, "30"}, col{35, "00"},
	)
}

func TestImportJMAHypocenter(t *testing.T) {
	in := jmaHypoLine("J") + "\nE\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	assert.Equal(t, model.TypeEarthquake, ev.Type)
	require.Len(t, ev.Comments, 1)
	assert.Equal(t, "JMA:subsidiary=1", ev.Comments[0].Text)
	require.Len(t, ev.Descriptions, 1)
	assert.Equal(t, "KANTO DISTRICT", ev.Descriptions[0].Text)
	assert.Equal(t, "region name", ev.Descriptions[0].Type)

	ori := ev.PreferredOrigin()
	require.NotNil(t, ori)
	assert.Equal(t, "JMA", ori.CreationInfo.AgencyID)

	// Deck times are JST; the stored focal time is UTC.
	want := qtime.Date(2004, time.January, 1, 10, 28, 59.26).Add(-9 * time.Hour)
	assert.True(t, ori.Time.Value.Equal(want, 1e-6))
	assert.InDelta(t, 0.15, *ori.Time.Uncertainty, 1e-9)

	assert.InDelta(t, 35.0+12.34/60.0, ori.Latitude.Value, 1e-9)
	assert.InDelta(t, 0.12/60.0, *ori.Latitude.Uncertainty, 1e-9)
	assert.InDelta(t, 139.0+45.67/60.0, ori.Longitude.Value, 1e-9)
	assert.InDelta(t, 0.24/60.0, *ori.Longitude.Uncertainty, 1e-9)
	assert.InDelta(t, 12000.0, ori.Depth.Value, 1e-6)
	assert.InDelta(t, 500.0, *ori.Depth.Uncertainty, 1e-6)
	assert.Equal(t, 123, *ori.Quality.UsedStationCount)

	require.Len(t, ev.Magnitudes, 2)
	assert.InDelta(t, 5.2, ev.Magnitudes[0].Mag.Value, 1e-9)
	assert.Equal(t, "MJ", ev.Magnitudes[0].Type)
	assert.Equal(t, "JMA", ev.Magnitudes[0].CreationInfo.AgencyID)
	assert.InDelta(t, 4.8, ev.Magnitudes[1].Mag.Value, 1e-9)
	assert.Equal(t, "MD", ev.Magnitudes[1].Type)
	assert.Equal(t, ev.Magnitudes[0].PublicID, ev.PreferredMagnitudeID)
}

func TestImportJMAMagnitudeCodes(t *testing.T) {
	tests := []struct {
		msg      string
		code     string
		magType  string
		want     float64
		expected bool
	}{
		{"plain two digit", "52", "J", 5.2, true},
		{"trailing blank reads as zero", "8 ", "J", 8.0, true},
		{"leading blank is unrecoverable", " 8", "J", 0, false},
		{"negative one digit", "-3", "D", -0.3, true},
		{"letter code A", "A5", "D", -1.5, true},
		{"letter code C", "C1", "D", -3.1, true},
		{"garbage", "X5", "D", 0, false},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			line := fixedLine(61,
				col{0, "J"}, col{1, "2004"}, col{5, "01"}, col{7, "01"},
				col{9, "10"}, col{11, "28"}, col{13, "59"}, col{15, "26"},
				col{52, v.code}, col{54, v.magType},
			)
			cat := newCatalog()
			err := ioformat.ImportJMA(cat,
				strings.NewReader(line+"\nE\n"), nil)
			require.NoError(t, err)
			require.Equal(t, 1, cat.Size())

			mags := cat.Events()[0].Magnitudes
			if !v.expected {
				assert.Empty(t, mags, v.msg)
				return
			}
			require.Len(t, mags, 1, v.msg)
			assert.InDelta(t, v.want, mags[0].Mag.Value, 1e-9, v.msg)
		})
	}
}

func TestImportJMAPhases(t *testing.T) {
	in := jmaHypoLine("J") + "\n" + jmaPhaseLine() + "\nE\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	require.Len(t, ev.Picks, 2)
	ori := ev.PreferredOrigin()
	require.Len(t, ori.Arrivals, 2)

	first := ev.Picks[0]
	assert.Equal(t, "JMA", first.WaveformID.NetworkCode)
	assert.Equal(t, "TOKYO", first.WaveformID.StationCode)
	wantFirst := qtime.Date(2004, time.January, 1, 10, 29, 10.5).
		Add(-9 * time.Hour)
	assert.True(t, first.Time.Value.Equal(wantFirst, 1e-6))
	assert.Equal(t, "P", ori.Arrivals[0].Phase.Code)

	// The second phase borrows the date and hour of the first pick.
	second := ev.Picks[1]
	wantSecond := qtime.Date(2004, time.January, 1, 1, 29, 30)
	assert.True(t, second.Time.Value.Equal(wantSecond, 1e-6))
	assert.Equal(t, "S", ori.Arrivals[1].Phase.Code)
}

func TestImportJMAPhaseMonthBoundary(t *testing.T) {
	hypo := fixedLine(61,
		col{0, "J"}, col{1, "2004"}, col{5, "01"}, col{7, "31"},
		col{9, "23"}, col{11, "59"}, col{13, "50"}, col{15, "00"},
	)
	phase := fixedLine(27,
		col{0, "_"}, col{1, "KOBE"}, col{13, "01"},
		col{15, "P"}, col{19, "00"}, col{21, "05"}, col{23, "00"}, col{25, "00"},
	)
	in := hypo + "\n" + phase + "\nE\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())

	pick := cat.Events()[0].Picks[0]
	want := qtime.Date(2004, time.February, 1, 0, 5, 0).Add(-9 * time.Hour)
	assert.True(t, pick.Time.Value.Equal(want, 1e-6))
}

func TestImportJMAMultipleSolutions(t *testing.T) {
	// One block, USGS solution first: still a single event, and the
	// JMA solution ends up preferred.
	in := jmaHypoLine("U") + "\n" + jmaHypoLine("J") + "\nE\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	require.Len(t, ev.Origins, 2)
	assert.Equal(t, "USGS", ev.Origins[0].CreationInfo.AgencyID)
	assert.Equal(t, "JMA", ev.Origins[1].CreationInfo.AgencyID)
	assert.Equal(t, ev.Origins[1].PublicID, ev.PreferredOriginID)
}

func TestImportJMAOptions(t *testing.T) {
	t.Run("JMAOnly drops foreign solutions", func(t *testing.T) {
		in := jmaHypoLine("U") + "\nE\n" + jmaHypoLine("J") + "\nE\n"
		cat := newCatalog()
		opts := &ioformat.Options{JMAOnly: true}
		require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), opts))
		require.Equal(t, 1, cat.Size())
		assert.Equal(t, "JMA",
			cat.Events()[0].PreferredOrigin().CreationInfo.AgencyID)
	})

	t.Run("NoPicks skips phase lines", func(t *testing.T) {
		in := jmaHypoLine("J") + "\n" + jmaPhaseLine() + "\nE\n"
		cat := newCatalog()
		opts := &ioformat.Options{NoPicks: true}
		require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), opts))
		require.Equal(t, 1, cat.Size())
		assert.Empty(t, cat.Events()[0].Picks)
	})
}

func TestImportJMAComments(t *testing.T) {
	in := jmaHypoLine("J") + "\nC FELT IN TOKYO\nC AND YOKOHAMA\nE\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	// subsidiary comment plus the accumulated free-text comment
	require.Len(t, ev.Comments, 2)
	assert.Equal(t, "FELT IN TOKYO AND YOKOHAMA", ev.Comments[1].Text)
}

func TestImportJMAPhaseBeforeHypocenter(t *testing.T) {
	in := jmaPhaseLine() + "\n"
	cat := newCatalog()
	// A phase line with no block at all is ignored.
	require.NoError(t, ioformat.ImportJMA(cat, strings.NewReader(in), nil))
	assert.Equal(t, 0, cat.Size())
}
