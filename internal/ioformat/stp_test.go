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

var stpFixture = strings.Join([]string{
	"14018180 le 2004/01/01,00:28:59.260   34.1630   -116.4237  13.14  1.52  l 1.0",
	"    CI    BLA HHZ --   34.0695  -116.3890  1243.0 P d. w  1.0   10.87   2.760",
	"    CI    RMR EHZ --   34.2128  -116.5764  1663.0 P c. i  1.0   15.09   3.390",
	"",
	"14018184 qb 2004/01/01,01:35:13.810   34.3683   -117.6293   5.00  1.32  c 1.0",
	"    CI    SVD BHZ --   34.1060  -117.0978  1500.0 S .. e  0.5   56.78   9.120",
}, "\n") + "\n"

func TestImportSTP(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportSTP(cat, strings.NewReader(stpFixture), nil))
	require.Equal(t, 2, cat.Size())

	ev := cat.Events()[0]
	assert.Equal(t, model.TypeEarthquake, ev.Type)

	ori := ev.PreferredOrigin()
	require.NotNil(t, ori)
	assert.InDelta(t, 34.1630, ori.Latitude.Value, 1e-9)
	assert.InDelta(t, -116.4237, ori.Longitude.Value, 1e-9)
	assert.InDelta(t, 13140.0, ori.Depth.Value, 1e-6)
	want := qtime.Date(2004, time.January, 1, 0, 28, 59.260)
	assert.True(t, ori.Time.Value.Equal(want, 1e-6))

	mag := ev.PreferredMagnitude()
	require.NotNil(t, mag)
	assert.InDelta(t, 1.52, mag.Mag.Value, 1e-9)
	assert.Equal(t, "ML", mag.Type)

	assert.Equal(t, model.TypeQuarryBlast, cat.Events()[1].Type)
	assert.Equal(t, "Md", cat.Events()[1].PreferredMagnitude().Type)
}

func TestImportSTPPhases(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportSTP(cat, strings.NewReader(stpFixture), nil))

	ev := cat.Events()[0]
	ori := ev.PreferredOrigin()
	require.Len(t, ev.Picks, 2)
	require.Len(t, ori.Arrivals, 2)

	pick := ev.Picks[0]
	assert.Equal(t, "CI", pick.WaveformID.NetworkCode)
	assert.Equal(t, "BLA", pick.WaveformID.StationCode)
	assert.Equal(t, "HHZ", pick.WaveformID.ChannelCode)
	assert.Empty(t, pick.WaveformID.LocationCode)
	assert.Equal(t, "questionable", pick.Onset)
	assert.Equal(t, "negative", pick.Polarity)
	wantPick := ori.Time.Value.Add(2760 * time.Millisecond)
	assert.True(t, pick.Time.Value.Equal(wantPick, 1e-6))

	assert.Equal(t, "impulsive", ev.Picks[1].Onset)
	assert.Equal(t, "positive", ev.Picks[1].Polarity)

	arrv := ori.Arrivals[0]
	assert.Equal(t, pick.PublicID, arrv.PickID)
	assert.Equal(t, "P", arrv.Phase.Code)
	require.NotNil(t, arrv.Distance)
	require.NotNil(t, arrv.Azimuth)
	// BLA sits roughly 11 km southeast of the epicenter.
	assert.InDelta(t, 0.1, *arrv.Distance, 0.05)
	assert.Greater(t, *arrv.Azimuth, 90.0)
	assert.Less(t, *arrv.Azimuth, 180.0)

	second := cat.Events()[1]
	assert.Equal(t, "emergent", second.Picks[0].Onset)
	assert.Equal(t, "undecidable", second.Picks[0].Polarity)
	assert.Equal(t, "S", second.PreferredOrigin().Arrivals[0].Phase.Code)
}

func TestImportSTPNoPicks(t *testing.T) {
	cat := newCatalog()
	opts := &ioformat.Options{NoPicks: true}
	require.NoError(t, ioformat.ImportSTP(cat, strings.NewReader(stpFixture), opts))
	require.Equal(t, 2, cat.Size())
	assert.Empty(t, cat.Events()[0].Picks)
	assert.Empty(t, cat.Events()[0].PreferredOrigin().Arrivals)
}

func TestImportSTPErrors(t *testing.T) {
	tests := []struct {
		msg string
		in  string
	}{
		{"stray token count", "one two three\n"},
		{"phase line before any event",
			"    CI    BLA HHZ --   34.0695  -116.3890  1243.0 P d. w  1.0   10.87   2.760\n"},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cat := newCatalog()
			err := ioformat.ImportSTP(cat, strings.NewReader(v.in), nil)
			assert.Error(t, err)
		})
	}
}
