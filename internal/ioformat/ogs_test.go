package ioformat_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

func ogsOriginFixture(seq, yy string) string {
	return fixedLine(127,
		col{0, seq}, col{7, yy}, col{9, "05"}, col{11, "06"},
		col{14, "20"}, col{16, "00"}, col{19, "12.40"},
		col{25, "46"}, col{28, "21.50"}, col{35, "13"}, col{38, "14.10"},
		col{45, "17.80"}, col{53, "3.9"},
		col{58, "24"}, col{64, "98"}, col{70, "0.21"},
		col{76, "1.2"}, col{81, "2.1"}, col{99, "18"}, col{125, "12"},
	)
}

func ogsPhaseFixture(seq string) string {
	return fixedLine(133,
		col{0, seq}, col{7, "BAD"}, col{12, "12.50"}, col{18, "145"},
		col{22, "112"}, col{26, "ip+"},
		col{31, "20"}, col{33, "00"}, col{36, "14.20"},
		col{61, "0.05"}, col{67, "1.00"},
		col{96, "45."}, col{100, "3.8"},
		col{105, "es"}, col{110, "16.80"},
		col{123, "0.10"}, col{130, "0.5"},
	)
}

func ogsFixture() string {
	return strings.Join([]string{
		"^FRIULI",
		"",
		ogsOriginFixture("   123", "77"),
		ogsPhaseFixture("   123"),
	}, "\n") + "\n"
}

func TestImportOGS(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(ogsFixture()), nil))
	require.Equal(t, 1, cat.Size())

	ev := cat.Events()[0]
	require.Len(t, ev.Descriptions, 1)
	assert.Equal(t, "FRIULI", ev.Descriptions[0].Text)
	assert.Equal(t, "region name", ev.Descriptions[0].Type)

	ori := ev.PreferredOrigin()
	require.NotNil(t, ori)
	// Two-digit year 77 sits at the pivot and reads as 1977.
	want := qtime.Date(1977, time.May, 6, 20, 0, 12.40)
	assert.True(t, ori.Time.Value.Equal(want, 1e-6))
	assert.InDelta(t, 46.0+21.50/60.0, ori.Latitude.Value, 1e-9)
	assert.InDelta(t, 13.0+14.10/60.0, ori.Longitude.Value, 1e-9)
	require.NotNil(t, ori.Depth)
	assert.InDelta(t, 17800.0, ori.Depth.Value, 1e-6)

	q := ori.Quality
	require.NotNil(t, q)
	assert.Equal(t, 24, *q.UsedPhaseCount)
	assert.InDelta(t, 98.0, *q.AzimuthalGap, 1e-9)
	assert.InDelta(t, 0.21, *q.StandardError, 1e-9)
	assert.Equal(t, 18, *q.AssociatedStationCount)

	require.Len(t, ori.Uncertainties, 1)
	assert.InDelta(t, 1200.0, *ori.Uncertainties[0].HorizontalUncertainty, 1e-6)
	assert.InDelta(t, 2100.0, *ori.Depth.Uncertainty, 1e-6)

	mag := ev.PreferredMagnitude()
	require.NotNil(t, mag)
	assert.Equal(t, "Md", mag.Type)
	assert.InDelta(t, 3.9, mag.Mag.Value, 1e-9)
	assert.Equal(t, 12, *mag.StationCount)
}

func TestImportOGSYearPivot(t *testing.T) {
	in := strings.Join([]string{
		"^FRIULI", "", ogsOriginFixture("     1", "05"),
	}, "\n") + "\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())
	assert.Equal(t, 2005,
		cat.Events()[0].PreferredOrigin().Time.Value.Std().Year())
}

func TestImportOGSPhases(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(ogsFixture()), nil))
	ev := cat.Events()[0]
	ori := ev.PreferredOrigin()

	require.Len(t, ev.Picks, 2)
	require.Len(t, ori.Arrivals, 2)

	p := ev.Picks[0]
	assert.Equal(t, "BAD", p.WaveformID.StationCode)
	assert.Equal(t, "XX", p.WaveformID.NetworkCode)
	assert.Equal(t, "P", p.PhaseHint.Code)
	assert.Equal(t, "impulsive", p.Onset)
	assert.Equal(t, "positive", p.Polarity)
	wantP := qtime.Date(1977, time.May, 6, 20, 0, 14.20)
	assert.True(t, p.Time.Value.Equal(wantP, 1e-6))
	require.NotNil(t, p.Backazimuth)
	assert.InDelta(t, qmath.BackazimuthFromAzimuth(112.0),
		p.Backazimuth.Value, 1e-9)

	pa := ori.Arrivals[0]
	assert.Equal(t, p.PublicID, pa.PickID)
	assert.InDelta(t, qmath.CentralAngleDegrees(12.50), *pa.Distance, 1e-9)
	assert.InDelta(t, 145.0, *pa.Azimuth, 1e-9)
	assert.InDelta(t, 0.05, *pa.TimeResidual, 1e-9)
	assert.InDelta(t, 1.00, *pa.TimeWeight, 1e-9)

	s := ev.Picks[1]
	assert.Equal(t, "S", s.PhaseHint.Code)
	assert.Equal(t, "emergent", s.Onset)
	wantS := qtime.Date(1977, time.May, 6, 20, 0, 16.80)
	assert.True(t, s.Time.Value.Equal(wantS, 1e-6))
	sa := ori.Arrivals[1]
	assert.InDelta(t, 0.10, *sa.TimeResidual, 1e-9)
	assert.InDelta(t, 0.5, *sa.TimeWeight, 1e-9)

	require.Len(t, ev.Amplitudes, 1)
	amp := ev.Amplitudes[0]
	assert.Equal(t, "END", amp.Type)
	assert.Equal(t, "s", amp.Unit)
	require.NotNil(t, amp.TimeWindow)
	assert.InDelta(t, 45.0, amp.TimeWindow.End, 1e-9)
	assert.True(t, amp.TimeWindow.Reference.Equal(wantP, 1e-6))

	require.Len(t, ev.StationMagnitudes, 1)
	sm := ev.StationMagnitudes[0]
	assert.Equal(t, "Md", sm.Type)
	assert.InDelta(t, 3.8, sm.Mag.Value, 1e-9)
	assert.Equal(t, amp.PublicID, sm.AmplitudeID)
}

func TestImportOGSInvalidPPick(t *testing.T) {
	phase := fixedLine(120,
		col{0, "   123"}, col{7, "BAD"}, col{26, "ip+"},
		col{31, "20"}, col{33, "00"}, col{36, "00.00"}, col{41, "***"},
		col{105, "es"}, col{110, "16.80"},
	)
	in := strings.Join([]string{
		"^FRIULI", "", ogsOriginFixture("   123", "77"), phase,
	}, "\n") + "\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(in), nil))
	ev := cat.Events()[0]

	// The starred-out P pick is dropped, the S pick survives.
	require.Len(t, ev.Picks, 1)
	assert.Equal(t, "S", ev.Picks[0].PhaseHint.Code)
}

func TestImportOGSSequenceMismatch(t *testing.T) {
	in := strings.Join([]string{
		"^FRIULI", "", ogsOriginFixture("   123", "77"),
		ogsPhaseFixture("   124"),
		ogsPhaseFixture("   124"),
	}, "\n") + "\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())
	// Phase lines of the non-localized event are not attached.
	assert.Empty(t, cat.Events()[0].Picks)
}

func TestImportOGSBadSequenceNumber(t *testing.T) {
	in := strings.Join([]string{
		"^FRIULI", "", fixedLine(30, col{0, "abcdef"}),
	}, "\n") + "\n"

	cat := newCatalog()
	err := ioformat.ImportOGS(cat, strings.NewReader(in), nil)
	assert.Error(t, err)
}

func TestImportOGSSkipsCommentLines(t *testing.T) {
	in := strings.Join([]string{
		"* run of 2024-01-05",
		"^FRIULI", "", ogsOriginFixture("   123", "77"),
		"* trailing remark",
		ogsPhaseFixture("   123"),
	}, "\n") + "\n"

	cat := newCatalog()
	require.NoError(t, ioformat.ImportOGS(cat, strings.NewReader(in), nil))
	require.Equal(t, 1, cat.Size())
	assert.Len(t, cat.Events()[0].Picks, 2)
}
