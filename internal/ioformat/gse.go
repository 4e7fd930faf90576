package ioformat

import (
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

const (
	gseHeaderBegin    = "BEGIN GSE2.0"
	gseHeaderDataType = "DATA_TYPE BULLETIN GSE2.0"
	gseLineStartEvent = "EVENT"
	gseLineStartStop  = "STOP"
	gseEventSeparator = "."

	gseMagnitudeCount        = 3
	gseStationMagnitudeCount = 2
)

// GSEMagnitudeColumns locates one magnitude slot on the first origin
// line. MagErr indexes the second origin line.
type GSEMagnitudeColumns struct {
	TypeFrom, TypeTo     int
	MagFrom, MagTo       int
	StaCntFrom, StaCntTo int
	MagErrFrom, MagErrTo int
}

// GSEFields describes where the author, origin id and magnitude
// columns sit on a GSE2.0 origin line. Older INGV bulletins shift
// these relative to the standard, which DefaultGSEFields encodes.
type GSEFields struct {
	AuthorFrom, AuthorTo int
	IDFrom, IDTo         int
	Mags                 [gseMagnitudeCount]GSEMagnitudeColumns
}

// DefaultGSEFields is the standard-conforming column layout.
func DefaultGSEFields() *GSEFields {
	return &GSEFields{
		AuthorFrom: 104, AuthorTo: 112,
		IDFrom: 114, IDTo: 122,
		Mags: [gseMagnitudeCount]GSEMagnitudeColumns{
			{TypeFrom: 71, TypeTo: 73, MagFrom: 73, MagTo: 77,
				StaCntFrom: 78, StaCntTo: 80, MagErrFrom: 74, MagErrTo: 77},
			{TypeFrom: 82, TypeTo: 84, MagFrom: 84, MagTo: 88,
				StaCntFrom: 89, StaCntTo: 91, MagErrFrom: 85, MagErrTo: 88},
			{TypeFrom: 93, TypeTo: 95, MagFrom: 95, MagTo: 99,
				StaCntFrom: 100, StaCntTo: 102, MagErrFrom: 96, MagErrTo: 99},
		},
	}
}

var gseDateRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}\s+`)

// gseMode is the state of the bulletin line machine.
type gseMode int

const (
	gseStart gseMode = iota
	gseHeader
	gseNewEvent
	gseOrigin
	gsePhases
	gseEventEnd
)

// gseState carries the current event block across lines.
type gseState struct {
	mode       gseMode
	headerLine int
	phaseLine  int

	ev      *model.Event
	evID    string
	ori     *model.Origin
	oriID   string
	oriLine int
	// magnitudes of the current first origin line, by slot, for the
	// uncertainty columns on the second line. Empty slots are nil.
	mags [gseMagnitudeCount]*model.Magnitude
}

// ImportGSE reads a GSE2.0 bulletin: a message header, then per event
// an EVENT line, one or two-line origin entries, a region line, a
// phase block, and a separator. A STOP line ends processing.
func ImportGSE(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("local"))
	fields := opts.GSEFields
	if fields == nil {
		fields = DefaultGSEFields()
	}

	st := &gseState{mode: gseStart}

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			return nil
		}

		if st.mode == gseStart {
			if blank(line) {
				continue
			}
			st.mode = gseHeader
		}

		if st.mode == gseHeader {
			if blank(line) {
				st.mode = gseNewEvent
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(line), gseLineStartEvent) {
				// First event block starts without a separating blank
				// line; fall through.
				st.mode = gseNewEvent
			} else {
				st.headerLine++
				if opts.CheckHeader {
					up := strings.ToUpper(strings.TrimSpace(line))
					if (st.headerLine == 1 && up != gseHeaderBegin) ||
						(st.headerLine == 5 && up != gseHeaderDataType) {
						return headerError(in.N(), line)
					}
				}
				continue
			}
		}

		if st.mode == gseEventEnd {
			trimmed := strings.TrimSpace(line)
			if strings.ToUpper(trimmed) == gseLineStartStop {
				return nil
			}
			if trimmed == "" || trimmed == gseEventSeparator {
				continue
			}
			st.mode = gseNewEvent
		}

		if st.mode == gseNewEvent {
			if blank(line) {
				st.mode = gseOrigin
				st.oriLine = 0
				continue
			}
			if strings.HasPrefix(strings.TrimSpace(line), gseLineStartEvent) {
				evID := field(line, 6, len(line))
				if evID == "" {
					return lineError(in.N(), line)
				}
				st.ev = &model.Event{PublicID: ids.ID("event", evID)}
				st.evID = evID
				cat.AddEvent(st.ev)
			}
			continue
		}

		if st.mode == gseOrigin {
			if blank(line) {
				continue
			}
			if !blank(line[0:1]) {
				if gseDateRe.MatchString(strings.TrimSpace(line)) {
					st.oriLine = 1
				} else {
					// Region line terminates the origin block.
					st.oriLine = 0
					if region := strings.TrimSpace(line); region != "" {
						st.ev.Descriptions = append(st.ev.Descriptions,
							&model.EventDescription{
								Text: region, Type: "region name",
							})
					}
					st.mode = gsePhases
					st.phaseLine = 0
					continue
				}
			} else {
				// A line with a blank first column is the second origin
				// line; it cannot stand alone.
				if st.oriLine != 1 {
					return lineError(in.N(), line)
				}
				st.oriLine = 2
			}

			switch st.oriLine {
			case 1:
				gseOriginLine1(ids, fields, st, line, in.N())
			case 2:
				gseOriginLine2(fields, st, line)
			}
			continue
		}

		if st.mode == gsePhases {
			st.phaseLine++
			if st.phaseLine == 1 {
				// Column header of the phase block.
				continue
			}
			if blank(line) {
				st.mode = gseEventEnd
				continue
			}
			if opts.NoPicks {
				continue
			}
			gsePhaseLine(ids, opts, st, line, in.N())
		}
	}
}

// gseOriginLine1 parses the first origin line: focal time, epicenter,
// depth, quality counts and up to three network magnitudes.
func gseOriginLine1(
	ids *catalog.IDGen, fields *GSEFields, st *gseState, line string, lineNo int,
) {
	year, okY := intAt(line, 0, 4)
	month, okMo := intAt(line, 5, 7)
	day, okD := intAt(line, 8, 10)
	hour, okH := intAt(line, 11, 13)
	minute, okMi := intAt(line, 14, 16)
	second, okS := floatAt(line, 17, 21)
	lat, okLat := floatAt(line, 25, 33)
	lon, okLon := floatAt(line, 34, 43)
	if !(okY && okMo && okD && okH && okMi && okS && okLat && okLon) {
		skipRecord(FormatGSE, lineNo, line, "malformed origin line")
		st.ori = nil
		st.oriLine = 0
		return
	}

	oriID := field(line, fields.IDFrom, fields.IDTo)
	if oriID == "" {
		oriID = st.evID
	}
	st.oriID = oriID

	ori := &model.Origin{
		PublicID: ids.ID("origin", oriID),
		Time: model.NewTimeQuantity(qtime.Date(
			year, time.Month(month), day, hour, minute, second)),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
	}
	st.ori = ori
	st.ev.Origins = append(st.ev.Origins, ori)

	if field(line, 22, 23) == "f" {
		v := true
		ori.TimeFixed = &v
	}
	if field(line, 44, 45) == "f" {
		v := true
		ori.EpicenterFixed = &v
	}
	if field(line, 53, 54) == "d" {
		ori.DepthType = "constrained by depth phases"
	}
	if depthKM, ok := floatAt(line, 47, 52); ok {
		ori.Depth = model.NewRealQuantity(1000 * depthKM)
	}
	if cnt, ok := intAt(line, 56, 60); ok {
		originQuality(ori).UsedPhaseCount = &cnt
	}
	if cnt, ok := intAt(line, 61, 65); ok {
		originQuality(ori).UsedStationCount = &cnt
	}
	if gap, ok := floatAt(line, 66, 69); ok {
		originQuality(ori).AzimuthalGap = &gap
	}

	st.mags = [gseMagnitudeCount]*model.Magnitude{}
	for n, cols := range fields.Mags {
		magStr := field(line, cols.MagFrom, cols.MagTo)
		if magStr == "" {
			continue
		}
		magVal, ok := parseFloat(magStr)
		if !ok {
			skipRecord(FormatGSE, lineNo, line, "illegal magnitude "+magStr)
			continue
		}
		mag := &model.Magnitude{
			PublicID: ids.Sub("magnitude", oriID, n+1),
			Mag:      model.NewRealQuantity(magVal),
			OriginID: ori.PublicID,
		}
		if magType := field(line, cols.TypeFrom, cols.TypeTo); magType != "" {
			mag.Type = magType
		} else {
			mag.Type = "unknown"
		}
		if cnt, ok := intAt(line, cols.StaCntFrom, cols.StaCntTo); ok {
			mag.StationCount = &cnt
		}
		st.ev.Magnitudes = append(st.ev.Magnitudes, mag)
		st.mags[n] = mag
	}

	if author := field(line, fields.AuthorFrom, fields.AuthorTo); author != "" {
		originCreationInfo(ori).AgencyID = author
	}

	st.ev.PreferredOriginID = ori.PublicID
	if len(st.ev.Magnitudes) > 0 {
		st.ev.PreferredMagnitudeID = st.ev.Magnitudes[0].PublicID
	}
}

// gseOriginLine2 parses the second origin line: rms, time error,
// error ellipse, depth error, distance range, magnitude errors,
// analysis type and event classification.
func gseOriginLine2(fields *GSEFields, st *gseState, line string) {
	ori := st.ori
	if ori == nil {
		return
	}
	if rms, ok := floatAt(line, 5, 10); ok {
		originQuality(ori).StandardError = &rms
	}
	if terr, ok := floatAt(line, 15, 21); ok {
		ori.Time.Uncertainty = &terr
	}

	ou := &model.OriginUncertainty{}
	ori.Uncertainties = append(ori.Uncertainties, ou)
	if minHz, ok := floatAt(line, 25, 31); ok {
		ou.MinHorizontalUncertainty = &minHz
		if maxHz, ok := floatAt(line, 32, 38); ok {
			ou.MaxHorizontalUncertainty = &maxHz
			if az, ok := floatAt(line, 40, 43); ok {
				ou.AzimuthMaxHorizontalUncertainty = &az
				ou.PreferredDescription = "uncertainty ellipse"
			}
		}
	}

	if derrKM, ok := floatAt(line, 49, 54); ok && ori.Depth != nil {
		v := 1000 * derrKM
		ori.Depth.Uncertainty = &v
	}
	if minDist, ok := floatAt(line, 56, 62); ok {
		originQuality(ori).MinimumDistance = &minDist
	}
	if maxDist, ok := floatAt(line, 63, 69); ok {
		originQuality(ori).MaximumDistance = &maxDist
	}
	for n, cols := range fields.Mags {
		if st.mags[n] == nil {
			continue
		}
		if magErr, ok := floatAt(line, cols.MagErrFrom, cols.MagErrTo); ok {
			st.mags[n].Mag.Uncertainty = &magErr
		}
	}

	// antype: GSE 'g' (guess) has no direct counterpart and maps to a
	// preliminary manual solution.
	switch strings.ToLower(field(line, 104, 105)) {
	case "m":
		ori.EvaluationMode = "manual"
	case "a":
		ori.EvaluationMode = "automatic"
	case "g":
		ori.EvaluationMode = "manual"
		ori.EvaluationStatus = "preliminary"
		ori.Comments = append(ori.Comments, &model.Comment{
			Text: "GSE2.0:antype=g",
		})
	}

	if evtype := field(line, 108, 110); evtype != "" {
		evType, certainty := gseEventType(evtype)
		if evType != "" {
			st.ev.Type = evType
			st.ev.TypeCertainty = certainty
		}
		st.ev.Comments = append(st.ev.Comments, &model.Comment{
			Text: "GSE2.0:evtype=" + evtype,
		})
	}
}

// gseEventType maps the two-letter GSE classification onto an event
// type and certainty. An unknown code yields an empty type.
func gseEventType(code string) (evType, certainty string) {
	switch strings.ToLower(code) {
	case "ke":
		return model.TypeEarthquake, model.CertaintyKnown
	case "se":
		return model.TypeEarthquake, model.CertaintySuspected
	case "kr":
		return model.TypeRockBurst, model.CertaintyKnown
	case "sr":
		return model.TypeRockBurst, model.CertaintySuspected
	case "ki":
		return "induced or triggered event", model.CertaintyKnown
	case "si":
		return "induced or triggered event", model.CertaintySuspected
	case "km":
		return "mining explosion", model.CertaintyKnown
	case "sm":
		return "mining explosion", model.CertaintySuspected
	case "kx":
		return "experimental explosion", model.CertaintyKnown
	case "sx":
		return "experimental explosion", model.CertaintySuspected
	case "kn":
		return model.TypeNuclearExplosion, model.CertaintyKnown
	case "sn":
		return model.TypeNuclearExplosion, model.CertaintySuspected
	case "ls":
		return model.TypeLandslide, model.CertaintyKnown
	}
	return "", ""
}

// gsePhaseLine parses one phase pick line and attaches pick, arrival,
// amplitude and station magnitudes to the current event and origin.
func gsePhaseLine(
	ids *catalog.IDGen, opts *Options, st *gseState, line string, lineNo int,
) {
	sta := field(line, 0, 5)
	phase := field(line, 23, 30)
	year, okY := intAt(line, 31, 35)
	month, okMo := intAt(line, 36, 38)
	day, okD := intAt(line, 39, 41)
	hour, okH := intAt(line, 42, 44)
	minute, okMi := intAt(line, 45, 47)
	second, okS := floatAt(line, 48, 52)
	if !(okY && okMo && okD && okH && okMi && okS) {
		skipRecord(FormatGSE, lineNo, line, "malformed phase line")
		return
	}

	pickID := field(line, 124, 132)
	if pickID == "" {
		pickID = strconv.Itoa(st.phaseLine)
	}

	network := opts.NetworkCode
	if code, ok := opts.StationNetworks[sta]; ok {
		network = code
	}

	pick := &model.Pick{
		PublicID: ids.ID("event", st.oriID+"/pick/"+pickID),
		Time: model.NewTimeQuantity(qtime.Date(
			year, time.Month(month), day, hour, minute, 0).
			Add(time.Duration(second * float64(time.Second)))),
		WaveformID: &model.WaveformStreamID{
			NetworkCode: network,
			StationCode: sta,
		},
		PhaseHint: &model.Phase{Code: phase},
	}
	st.ev.Picks = append(st.ev.Picks, pick)

	arrv := &model.Arrival{
		PickID: pick.PublicID,
		Phase:  &model.Phase{Code: phase},
	}
	st.ori.Arrivals = append(st.ori.Arrivals, arrv)

	if az, ok := floatAt(line, 59, 64); ok {
		pick.Backazimuth = model.NewRealQuantity(
			qmath.BackazimuthFromAzimuth(az))
	}
	if slow, ok := floatAt(line, 72, 77); ok {
		pick.HorizontalSlowness = model.NewRealQuantity(slow)
	}
	if dist, ok := floatAt(line, 6, 12); ok {
		arrv.Distance = &dist
	}
	if az, ok := floatAt(line, 13, 18); ok {
		arrv.Azimuth = &az
	}
	if res, ok := floatAt(line, 53, 58); ok {
		arrv.TimeResidual = &res
	}
	if res, ok := floatAt(line, 65, 71); ok {
		arrv.BackazimuthResidual = &res
	}
	if res, ok := floatAt(line, 78, 83); ok {
		arrv.HorizontalSlownessResidual = &res
	}

	// Amplitude in nanometres of displacement.
	var amp *model.Amplitude
	if ampNM, ok := floatAt(line, 94, 103); ok {
		amp = &model.Amplitude{
			PublicID:         ids.ID("event", st.oriID+"/amplitude/"+pickID),
			GenericAmplitude: model.NewRealQuantity(ampNM * 1e-9),
			Type:             "A",
			Unit:             "m",
			PickID:           pick.PublicID,
			WaveformID:       pick.WaveformID,
		}
		st.ev.Amplitudes = append(st.ev.Amplitudes, amp)

		if snr, ok := floatAt(line, 88, 93); ok {
			amp.SNR = &snr
		}
		if period, ok := floatAt(line, 104, 109); ok {
			amp.Period = model.NewRealQuantity(period)
		}
	}

	staMagCols := [gseStationMagnitudeCount]struct {
		from, to, typeFrom, typeTo int
	}{
		{112, 116, 110, 112},
		{119, 123, 117, 119},
	}
	for n, cols := range staMagCols {
		magVal, ok := floatAt(line, cols.from, cols.to)
		if !ok {
			continue
		}
		staMag := &model.StationMagnitude{
			PublicID: ids.ID("stationmagnitude",
				st.oriID+"/"+pickID+"/"+strconv.Itoa(n+1)),
			OriginID:   st.ori.PublicID,
			Mag:        model.NewRealQuantity(magVal),
			Type:       field(line, cols.typeFrom, cols.typeTo),
			WaveformID: pick.WaveformID,
		}
		if amp != nil {
			staMag.AmplitudeID = amp.PublicID
		}
		st.ev.StationMagnitudes = append(st.ev.StationMagnitudes, staMag)
	}
}
