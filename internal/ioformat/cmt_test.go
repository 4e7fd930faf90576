package ioformat_test

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakepy/qcat/internal/ioformat"
	"github.com/quakepy/qcat/pkg/qtime"
)

var cmtFixture = strings.Join([]string{
	"PDE  2005/01/01 01:20:05.4  13.78  -88.78 193.1 5.0 0.0 EL SALVADOR             ",
	"C200501010120A   B:  4    4  40 S: 27   33  50 M:  0    0   0 CMT: 1 TRIHD:  0.6",
	"CENTROID:     -0.3 0.9  13.76 0.06  -89.08 0.09 162.8 12.5 FREE S-20050322125201",
	"23  0.838 0.201 -0.005 0.231 -0.833 0.270  1.050 0.121 -0.369 0.161  0.044 0.240",
	"V10   1.581 56  12  -0.537 23 140  -1.044 24 241   1.312   9 29  142 133 72   66",
	"PDE  2005/01/01 01:42:24.9   7.29   93.92  30.0 5.1 0.0 NICOBAR ISLANDS, INDIA R",
	"C200501010142A   B: 17   27  40 S: 41   58  50 M:  0    0   0 CMT: 1 TRIHD:  0.7",
	"CENTROID:     -1.1 0.8   7.24 0.04   93.96 0.04  12.0  0.0 BDY  S-20050322125628",
	"23 -1.310 0.212  2.320 0.166 -1.010 0.241  0.013 0.535 -2.570 0.668  1.780 0.151",
	"V10   3.376 16 149   0.611 43  44  -3.987 43 254   3.681 282 48  -23  28 73 -136",
}, "\n") + "\n"

func TestImportCMT(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(cmtFixture), nil))
	require.Equal(t, 2, cat.Size())

	ev := cat.Events()[0]

	require.Len(t, ev.Descriptions, 1)
	assert.Equal(t, "EL SALVADOR", ev.Descriptions[0].Text)
	assert.Equal(t, "region name", ev.Descriptions[0].Type)

	require.Len(t, ev.Origins, 2)
	ref := ev.Origins[0]
	assert.InDelta(t, 13.78, ref.Latitude.Value, 1e-9)
	assert.InDelta(t, -88.78, ref.Longitude.Value, 1e-9)
	assert.InDelta(t, 193100.0, ref.Depth.Value, 1e-6)
	refTime := qtime.Date(2005, time.January, 1, 1, 20, 5.4)
	assert.True(t, ref.Time.Value.Equal(refTime, 1e-6))
	require.Len(t, ref.Comments, 1)
	assert.Equal(t, "CMT:catalog=PDE", ref.Comments[0].Text)

	// The centroid becomes the preferred origin, shifted by the
	// centroid time offset relative to the reference hypocenter.
	centroid := ev.PreferredOrigin()
	require.NotNil(t, centroid)
	assert.Same(t, ev.Origins[1], centroid)
	assert.True(t, centroid.Time.Value.Equal(refTime.Add(-300*time.Millisecond), 1e-6))
	require.NotNil(t, centroid.Time.Uncertainty)
	assert.InDelta(t, 0.9, *centroid.Time.Uncertainty, 1e-9)
	assert.InDelta(t, 13.76, centroid.Latitude.Value, 1e-9)
	assert.InDelta(t, 0.06, *centroid.Latitude.Uncertainty, 1e-9)
	assert.InDelta(t, -89.08, centroid.Longitude.Value, 1e-9)
	assert.InDelta(t, 162800.0, centroid.Depth.Value, 1e-6)
	assert.InDelta(t, 12500.0, *centroid.Depth.Uncertainty, 1e-6)
	assert.Equal(t, "from moment tensor inversion", centroid.DepthType)
}

func TestImportCMTMechanism(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(cmtFixture), nil))
	ev := cat.Events()[0]

	fm := ev.PreferredFocalMechanism()
	require.NotNil(t, fm)
	assert.Equal(t, ev.Origins[0].PublicID, fm.TriggeringOriginID)

	require.Len(t, fm.MomentTensors, 1)
	mt := fm.MomentTensors[0]
	assert.Equal(t, ev.PreferredOriginID, mt.DerivedOriginID)
	assert.Equal(t, "zero trace", mt.InversionType)

	require.Len(t, mt.DataUsed, 2)
	assert.Equal(t, "body waves", mt.DataUsed[0].WaveType)
	assert.Equal(t, 4, *mt.DataUsed[0].StationCount)
	assert.Equal(t, 4, *mt.DataUsed[0].ComponentCount)
	assert.InDelta(t, 40.0, *mt.DataUsed[0].ShortestPeriod, 1e-9)
	assert.Equal(t, "surface waves", mt.DataUsed[1].WaveType)
	assert.Equal(t, 27, *mt.DataUsed[1].StationCount)

	require.NotNil(t, mt.SourceTimeFunction)
	assert.Equal(t, "triangle", mt.SourceTimeFunction.Type)
	assert.InDelta(t, 1.2, mt.SourceTimeFunction.Duration, 1e-9)

	require.NotNil(t, mt.Tensor)
	assert.InDelta(t, 0.838e23, mt.Tensor.Mrr.Value, 1e17)
	assert.InDelta(t, 0.201e23, *mt.Tensor.Mrr.Uncertainty, 1e17)
	assert.InDelta(t, -0.005e23, mt.Tensor.Mtt.Value, 1e17)
	assert.InDelta(t, -0.833e23, mt.Tensor.Mpp.Value, 1e17)
	assert.InDelta(t, 1.050e23, mt.Tensor.Mrt.Value, 1e17)
	assert.InDelta(t, -0.369e23, mt.Tensor.Mrp.Value, 1e17)
	assert.InDelta(t, 0.044e23, mt.Tensor.Mtp.Value, 1e17)

	require.NotNil(t, mt.ScalarMoment)
	assert.InDelta(t, 1.312e23, mt.ScalarMoment.Value, 1e17)

	require.NotNil(t, fm.PrincipalAxes)
	assert.InDelta(t, 1.581e23, fm.PrincipalAxes.TAxis.Length.Value, 1e17)
	assert.InDelta(t, 56.0, fm.PrincipalAxes.TAxis.Plunge.Value, 1e-9)
	assert.InDelta(t, 12.0, fm.PrincipalAxes.TAxis.Azimuth.Value, 1e-9)
	assert.InDelta(t, -0.537e23, fm.PrincipalAxes.PAxis.Length.Value, 1e17)
	assert.InDelta(t, -1.044e23, fm.PrincipalAxes.NAxis.Length.Value, 1e17)

	require.NotNil(t, fm.NodalPlanes)
	assert.InDelta(t, 9.0, fm.NodalPlanes.NodalPlane1.Strike.Value, 1e-9)
	assert.InDelta(t, 29.0, fm.NodalPlanes.NodalPlane1.Dip.Value, 1e-9)
	assert.InDelta(t, 142.0, fm.NodalPlanes.NodalPlane1.Rake.Value, 1e-9)
	assert.InDelta(t, 133.0, fm.NodalPlanes.NodalPlane2.Strike.Value, 1e-9)
	assert.InDelta(t, 72.0, fm.NodalPlanes.NodalPlane2.Dip.Value, 1e-9)
	assert.InDelta(t, 66.0, fm.NodalPlanes.NodalPlane2.Rake.Value, 1e-9)

	require.NotNil(t, mt.CreationInfo)
	wantCreated := qtime.Date(2005, time.March, 22, 12, 52, 1)
	assert.True(t, mt.CreationInfo.CreationTime.Equal(wantCreated, 1e-6))
}

func TestImportCMTMagnitudes(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(cmtFixture), nil))
	ev := cat.Events()[0]

	// mb 5.0 from the hypocenter line, MS slot is zero and dropped,
	// MW derived from the scalar moment.
	require.Len(t, ev.Magnitudes, 2)
	assert.Equal(t, "mb", ev.Magnitudes[0].Type)
	assert.InDelta(t, 5.0, ev.Magnitudes[0].Mag.Value, 1e-9)

	mw := ev.PreferredMagnitude()
	require.NotNil(t, mw)
	assert.Equal(t, "MW", mw.Type)
	want := 2.0 * (math.Log10(1.312e23) - 16.1) / 3.0
	assert.InDelta(t, want, mw.Mag.Value, 1e-3)
}

func TestImportCMTSecondEvent(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(cmtFixture), nil))
	ev := cat.Events()[1]

	assert.Equal(t, "NICOBAR ISLANDS, INDIA R", ev.Descriptions[0].Text)

	centroid := ev.PreferredOrigin()
	require.NotNil(t, centroid)
	assert.Equal(t, "from modeling of broad-band P waveforms", centroid.DepthType)
	assert.InDelta(t, 7.24, centroid.Latitude.Value, 1e-9)
	assert.InDelta(t, 93.96, centroid.Longitude.Value, 1e-9)
	assert.InDelta(t, 12000.0, centroid.Depth.Value, 1e-6)

	mw := ev.PreferredMagnitude()
	require.NotNil(t, mw)
	want := 2.0 * (math.Log10(3.681e23) - 16.1) / 3.0
	assert.InDelta(t, want, mw.Mag.Value, 1e-3)
}

func TestImportCMTTruncatedRecord(t *testing.T) {
	lines := strings.SplitAfter(cmtFixture, "\n")
	in := strings.Join(lines[:7], "")

	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(in), nil))
	// The trailing two-line fragment is dropped, the complete record
	// survives.
	assert.Equal(t, 1, cat.Size())
}

func TestCMTRoundTrip(t *testing.T) {
	cat := newCatalog()
	require.NoError(t, ioformat.ImportCMT(cat, strings.NewReader(cmtFixture), nil))

	var buf bytes.Buffer
	require.NoError(t, ioformat.ExportCMT(cat, &buf))
	require.Equal(t, 10, strings.Count(buf.String(), "\n"))

	second := newCatalog()
	require.NoError(t, ioformat.ImportCMT(second, &buf, nil))
	require.Equal(t, 2, second.Size())

	a := cat.Events()[0]
	b := second.Events()[0]
	assert.Equal(t, "EL SALVADOR", b.Descriptions[0].Text)

	oa, ob := a.Origins[0], b.Origins[0]
	assert.InDelta(t, oa.Latitude.Value, ob.Latitude.Value, 0.01)
	assert.InDelta(t, oa.Longitude.Value, ob.Longitude.Value, 0.01)
	assert.InDelta(t, oa.Depth.Value, ob.Depth.Value, 100.0)
	// Sub-second precision is not representable in the hypocenter line.
	assert.True(t, oa.Time.Value.Equal(*ob.Time.Value, 1.0))

	ma, mb := a.PreferredFocalMechanism().MomentTensors[0],
		b.PreferredFocalMechanism().MomentTensors[0]
	assert.InDelta(t, ma.ScalarMoment.Value, mb.ScalarMoment.Value, 1e20)
	assert.InDelta(t, ma.Tensor.Mrr.Value, mb.Tensor.Mrr.Value, 1e20)
	assert.InDelta(t, ma.Tensor.Mtp.Value, mb.Tensor.Mtp.Value, 1e20)
	assert.Equal(t, ma.InversionType, mb.InversionType)
	assert.InDelta(t, ma.SourceTimeFunction.Duration,
		mb.SourceTimeFunction.Duration, 1e-6)
}
