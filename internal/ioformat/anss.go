package ioformat

import (
	"io"
	"math"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

// anssRequiredLength covers the hypocenter block every usable line
// must carry; shorter lines are skipped.
const anssRequiredLength = 51

// ImportANSS reads the ANSS "unified" fixed-width catalog format, one
// event per line. The hypocenter block is required; location quality,
// magnitude and additional-location blocks are optional and every
// field in them is coerced independently.
func ImportANSS(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("ANSS"))

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		if blank(line) {
			continue
		}
		if len(line) < anssRequiredLength {
			skipRecord(FormatANSS, in.N(), line, "line shorter than hypocenter block")
			continue
		}
		anssRecord(cat, ids, line, in.N())
	}
	return nil
}

func anssRecord(cat *catalog.Catalog, ids *catalog.IDGen, line string, lineNo int) {
	year, okY := intAt(line, 5, 9)
	month, okMo := intAt(line, 9, 11)
	day, okD := intAt(line, 11, 13)
	hour, okH := intAt(line, 13, 15)
	minute, okMi := intAt(line, 15, 17)
	sec, okS := floatAt(line, 17, 24)
	lat, okLat := floatAt(line, 24, 33)
	lon, okLon := floatAt(line, 33, 43)
	depthKM, okDepth := floatAt(line, 43, 51)
	if !(okY && okMo && okD && okH && okMi && okS && okLat && okLon && okDepth) {
		skipRecord(FormatANSS, lineNo, line, "malformed hypocenter block")
		return
	}

	local := field(line, 5, 24)

	ev := &model.Event{PublicID: ids.ID("event", local)}
	ori := &model.Origin{
		PublicID: ids.ID("origin", local),
		Time: model.NewTimeQuantity(qtime.CorrectedDate(
			year, time.Month(month), day, hour, minute, sec)),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
		Depth:     model.NewRealQuantity(1000 * depthKM),
	}
	ev.Origins = append(ev.Origins, ori)
	ev.PreferredOriginID = ori.PublicID
	cat.AddEvent(ev)

	anssLocationInfo(line, ev, ori)
	if len(line) > 123 {
		anssMagnitudeBlock(ids, line[124:], local, ev, ori)
	}
	if len(line) > 172 {
		anssAdditionalLocation(ids, line[173:], local, lat, ev, ori)
	}
}

func anssLocationInfo(line string, ev *model.Event, ori *model.Origin) {
	switch field(line, 51, 53) {
	case "h":
		ori.Type = "hypocenter"
	case "c":
		ori.Type = "centroid"
	case "a":
		ori.Type = "amplitude"
	}
	if src := field(line, 53, 56); src != "" {
		originCreationInfo(ori).AgencyID = src
	}
	if cnt, ok := intAt(line, 56, 60); ok {
		originQuality(ori).UsedPhaseCount = &cnt
	}
	if gap, ok := floatAt(line, 60, 63); ok {
		originQuality(ori).AzimuthalGap = &gap
	}
	if distKM, ok := floatAt(line, 63, 73); ok {
		deg := qmath.CentralAngleDegrees(distKM)
		originQuality(ori).MinimumDistance = &deg
	}
	if rms, ok := floatAt(line, 73, 80); ok {
		originQuality(ori).StandardError = &rms
	}
	if terr, ok := floatAt(line, 80, 87); ok {
		ori.Time.Uncertainty = &terr
	}
	if hzKM, ok := floatAt(line, 87, 94); ok {
		v := 1000 * hzKM
		ori.Uncertainties = append(ori.Uncertainties,
			&model.OriginUncertainty{HorizontalUncertainty: &v})
	}
	if derrKM, ok := floatAt(line, 94, 101); ok {
		v := 1000 * derrKM
		ori.Depth.Uncertainty = &v
	}
	if remarks := field(line, 101, 103); remarks != "" {
		switch remarks {
		case "l", "t", "r":
			ev.Type = model.TypeEarthquake
		case "n":
			ev.Type = model.TypeNuclearExplosion
		case "q":
			ev.Type = model.TypeQuarryBlast
		}
		ev.Comments = append(ev.Comments, &model.Comment{
			Text: "ANSS:event_type=" + remarks,
		})
	}
	if t, ok := anssDate(field(line, 103, 111)); ok {
		originCreationInfo(ori).CreationTime = &t
	}
}

// anssMagnitudeBlock parses the optional magnitude section. The
// magnitude value is required within the block; everything else is
// coerced field by field.
func anssMagnitudeBlock(
	ids *catalog.IDGen, info, local string, ev *model.Event, ori *model.Origin,
) {
	magVal, ok := floatAt(info, 5, 10)
	if !ok {
		return
	}
	mag := &model.Magnitude{
		PublicID: ids.ID("magnitude", local),
		Mag:      model.NewRealQuantity(magVal),
		OriginID: ori.PublicID,
	}
	ev.Magnitudes = append(ev.Magnitudes, mag)
	ev.PreferredMagnitudeID = mag.PublicID

	if magType := field(info, 10, 12); magType != "" {
		switch magType {
		case "b":
			mag.Type = "MB"
		case "l", "l1", "l2":
			mag.Type = "ML"
		case "s":
			mag.Type = "MS"
		case "w":
			mag.Type = "MW"
		case "e":
			mag.Type = "ME"
		case "c":
			mag.Type = "Mc"
		case "d":
			mag.Type = "Md"
		}
		mag.Comments = append(mag.Comments, &model.Comment{
			Text: "ANSS:magnitude_type=" + magType,
		})
	}
	if src := field(info, 12, 15); src != "" {
		magCreationInfo(mag).AgencyID = src
	}
	if cnt, ok := intAt(info, 15, 19); ok {
		mag.StationCount = &cnt
	}
	if magErr, ok := floatAt(info, 19, 24); ok {
		mag.Mag.Uncertainty = &magErr
	}
	if t, ok := anssDate(field(info, 28, 36)); ok {
		magCreationInfo(mag).CreationTime = &t
	}
}

// anssAdditionalLocation parses the trailing block with phase counts,
// first motions and the lat/lon errors given in km.
func anssAdditionalLocation(
	ids *catalog.IDGen, info, local string, lat float64,
	ev *model.Event, ori *model.Origin,
) {
	if cnt, ok := intAt(info, 8, 12); ok {
		originQuality(ori).AssociatedPhaseCount = &cnt
	}
	if cnt, ok := intAt(info, 16, 20); ok {
		fm := &model.FocalMechanism{
			PublicID:             ids.ID("focalmechanism", local),
			StationPolarityCount: &cnt,
		}
		ev.FocalMechanisms = append(ev.FocalMechanisms, fm)
		ev.PreferredFocalMechanismID = fm.PublicID
	}
	if latErrKM, ok := floatAt(info, 65, 75); ok {
		v := latErrKM / qmath.EarthKMPerDegree
		ori.Latitude.Uncertainty = &v
	}
	if lonErrKM, ok := floatAt(info, 75, 85); ok {
		var v float64
		if lat != 90.0 && lat != -90.0 {
			v = lonErrKM / (qmath.EarthKMPerDegree * math.Cos(lat))
		}
		ori.Longitude.Uncertainty = &v
	}
}

// anssDate parses the YYYYMMDD solution dates the format carries.
func anssDate(s string) (qtime.Time, bool) {
	if len(s) != 8 {
		return qtime.Time{}, false
	}
	year, okY := parseInt(s[0:4])
	month, okMo := parseInt(s[4:6])
	day, okD := parseInt(s[6:8])
	if !(okY && okMo && okD) || month < 1 || month > 12 {
		return qtime.Time{}, false
	}
	return qtime.Date(year, time.Month(month), day, 0, 0, 0), true
}

func originQuality(ori *model.Origin) *model.OriginQuality {
	if ori.Quality == nil {
		ori.Quality = &model.OriginQuality{}
	}
	return ori.Quality
}

func originCreationInfo(ori *model.Origin) *model.CreationInfo {
	if ori.CreationInfo == nil {
		ori.CreationInfo = &model.CreationInfo{}
	}
	return ori.CreationInfo
}

func magCreationInfo(mag *model.Magnitude) *model.CreationInfo {
	if mag.CreationInfo == nil {
		mag.CreationInfo = &model.CreationInfo{}
	}
	return mag.CreationInfo
}
