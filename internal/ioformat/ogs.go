package ioformat

import (
	"io"
	"strconv"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

const (
	ogsLineStartRegion  = '^'
	ogsLineStartComment = '*'

	// The OGS catalog starts in 1977: two-digit years at or above this
	// pivot are 19XX, below it 20XX.
	ogsYearPivot = 77
)

// ogsState tracks the current localized event block. Only blocks
// introduced by a '^' region line are imported; a sequence-number
// change inside a phase block marks a non-localized event, which is
// skipped until the next region line.
type ogsState struct {
	mode   ogsMode
	region string

	seq       int
	ev        *model.Event
	ori       *model.Origin
	oriID     string
	year      int
	month     int
	day       int
	phaseLine int
}

type ogsMode int

const (
	ogsSkip ogsMode = iota
	ogsNewEvent
	ogsOrigin
	ogsPhases
)

// ImportOGS reads the HPL format used by OGS. A localized event block
// starts with a '^' region line followed by one blank line, a
// hypocenter line and phase lines, all carrying a right-adjusted
// sequence number in the first six columns.
func ImportOGS(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("OGS"))

	st := &ogsState{mode: ogsSkip}

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			return nil
		}
		if len(line) > 0 && line[0] == ogsLineStartRegion {
			st.mode = ogsNewEvent
			st.region = field(line, 1, len(line))
			continue
		}
		if len(line) > 0 && line[0] == ogsLineStartComment {
			continue
		}

		switch st.mode {
		case ogsSkip:
		case ogsNewEvent:
			// One blank line separates the region line from the
			// hypocenter line.
			st.mode = ogsOrigin
		case ogsOrigin:
			if err := ogsOriginLine(cat, ids, st, line, in.N()); err != nil {
				return err
			}
		case ogsPhases:
			if opts.NoPicks {
				continue
			}
			if err := ogsPhaseLine(ids, opts, st, line, in.N()); err != nil {
				return err
			}
		}
	}
}

// ogsOriginLine parses the hypocenter line of a block. Focal time and
// coordinates are required; a failure skips the whole block. The
// format carries no identifiers, so the ISO focal time keys the event.
func ogsOriginLine(
	cat *catalog.Catalog, ids *catalog.IDGen, st *ogsState,
	line string, lineNo int,
) error {
	seq, ok := intAt(line, 0, 6)
	if !ok {
		return sequenceError(lineNo, line)
	}
	st.seq = seq

	yy, okYY := intAt(line, 7, 9)
	month, okMo := intAt(line, 9, 11)
	day, okD := intAt(line, 11, 13)
	hour, okH := intAt(line, 14, 16)
	minute, okMi := intAt(line, 16, 18)
	second, okS := floatAt(line, 19, 24)
	latDeg, okLatD := floatAt(line, 25, 27)
	latMin, okLatM := floatAt(line, 28, 33)
	lonDeg, okLonD := floatAt(line, 35, 37)
	lonMin, okLonM := floatAt(line, 38, 43)
	if !(okYY && okMo && okD && okH && okMi && okS &&
		okLatD && okLatM && okLonD && okLonM) {
		skipRecord(FormatOGS, lineNo, line, "malformed hypocenter line")
		st.mode = ogsSkip
		return nil
	}

	year := 2000 + yy
	if yy >= ogsYearPivot {
		year = 1900 + yy
	}
	st.year, st.month, st.day = year, month, day

	ori := &model.Origin{
		Time: model.NewTimeQuantity(qtime.Date(
			year, time.Month(month), day, hour, minute, second)),
		Latitude:  model.NewRealQuantity(latDeg + latMin/60.0),
		Longitude: model.NewRealQuantity(lonDeg + lonMin/60.0),
	}
	local := ori.Time.Value.ISO(2)
	ori.PublicID = ids.ID("origin", local)
	st.ori = ori
	st.oriID = local

	ev := &model.Event{PublicID: ids.ID("event", local)}
	ev.Origins = append(ev.Origins, ori)
	ev.PreferredOriginID = ori.PublicID
	ev.Descriptions = append(ev.Descriptions, &model.EventDescription{
		Text: st.region, Type: "region name",
	})
	st.ev = ev
	cat.AddEvent(ev)

	if depthKM, ok := floatAt(line, 45, 50); ok {
		ori.Depth = model.NewRealQuantity(1000 * depthKM)
	}
	if magVal, ok := floatAt(line, 52, 57); ok {
		mag := &model.Magnitude{
			PublicID: ids.ID("magnitude", local),
			Mag:      model.NewRealQuantity(magVal),
			Type:     "Md",
			OriginID: ori.PublicID,
		}
		if cnt, ok := intAt(line, 125, 127); ok {
			mag.StationCount = &cnt
		}
		ev.Magnitudes = append(ev.Magnitudes, mag)
		ev.PreferredMagnitudeID = mag.PublicID
	}
	if cnt, ok := intAt(line, 58, 60); ok {
		originQuality(ori).UsedPhaseCount = &cnt
	}
	if gap, ok := floatAt(line, 64, 67); ok {
		originQuality(ori).AzimuthalGap = &gap
	}
	if rms, ok := floatAt(line, 70, 74); ok {
		originQuality(ori).StandardError = &rms
	}
	if hzErrKM, ok := floatAt(line, 74, 79); ok {
		v := 1000 * hzErrKM
		ori.Uncertainties = append(ori.Uncertainties,
			&model.OriginUncertainty{HorizontalUncertainty: &v})
	}
	if derrKM, ok := floatAt(line, 79, 84); ok && ori.Depth != nil {
		v := 1000 * derrKM
		ori.Depth.Uncertainty = &v
	}
	if cnt, ok := intAt(line, 99, 101); ok {
		originQuality(ori).AssociatedStationCount = &cnt
	}

	st.mode = ogsPhases
	st.phaseLine = 0
	return nil
}

// ogsPhaseLine parses one phase line, carrying a P arrival and often
// an S arrival for the same station. A sequence-number change marks a
// non-localized event whose lines are skipped.
func ogsPhaseLine(
	ids *catalog.IDGen, opts *Options, st *ogsState, line string, lineNo int,
) error {
	seq, ok := intAt(line, 0, 6)
	if !ok {
		return sequenceError(lineNo, line)
	}
	if seq != st.seq {
		st.mode = ogsSkip
		return nil
	}
	st.phaseLine++

	sta := field(line, 7, 11)
	phaseBlock := field(line, 26, 29)
	hour, okH := intAt(line, 31, 33)
	minute, okM := intAt(line, 33, 35)
	second, okS := floatAt(line, 36, 41)
	if !(okH && okM && okS) {
		skipRecord(FormatOGS, lineNo, line, "malformed phase line")
		return nil
	}

	// Pick times are measured from the hour/minute base of this line.
	base := qtime.Date(st.year, time.Month(st.month), st.day, hour, minute, 0)

	// An invalid P pick has zero seconds followed by a '*' run.
	if !(second == 0.0 && len(line) > 41 && line[41] == ogsLineStartComment) {
		pickID := strconv.Itoa(st.phaseLine)
		pick := ogsPick(ids, st, pickID, base, second, sta, "P", opts)

		if len(phaseBlock) > 2 {
			switch phaseBlock[2] {
			case '+':
				pick.Polarity = "positive"
			case '-':
				pick.Polarity = "negative"
			}
		}
		ogsOnset(pick, phaseBlock)

		arrv := st.ori.Arrivals[len(st.ori.Arrivals)-1]
		if distKM, ok := floatAt(line, 12, 17); ok {
			deg := qmath.CentralAngleDegrees(distKM)
			arrv.Distance = &deg
		}
		if az, ok := floatAt(line, 18, 21); ok {
			arrv.Azimuth = &az
		}
		if incidence, ok := floatAt(line, 22, 25); ok {
			pick.Backazimuth = model.NewRealQuantity(
				qmath.BackazimuthFromAzimuth(incidence))
		}
		if res, ok := floatAt(line, 60, 65); ok {
			arrv.TimeResidual = &res
		}
		if weight, ok := floatAt(line, 67, 71); ok {
			arrv.TimeWeight = &weight
		}

		// Signal duration for the duration magnitude. TimeWindow needs
		// an absolute reference, for which the P pick time serves.
		var amp *model.Amplitude
		if duration, ok := floatAt(line, 96, 99); ok {
			amp = &model.Amplitude{
				PublicID: ids.ID("event", st.oriID+"/amplitude/"+pickID),
				Type:     "END",
				Unit:     "s",
				TimeWindow: &model.TimeWindow{
					Begin:     0.0,
					End:       duration,
					Reference: pick.Time.Value,
				},
				PickID:     pick.PublicID,
				WaveformID: pick.WaveformID,
			}
			st.ev.Amplitudes = append(st.ev.Amplitudes, amp)
		}
		if magVal, ok := floatAt(line, 100, 103); ok {
			staMag := &model.StationMagnitude{
				PublicID: ids.ID("stationmagnitude",
					st.oriID+"/"+pickID),
				OriginID:   st.ori.PublicID,
				Mag:        model.NewRealQuantity(magVal),
				Type:       "Md",
				WaveformID: pick.WaveformID,
			}
			if amp != nil {
				staMag.AmplitudeID = amp.PublicID
			}
			st.ev.StationMagnitudes = append(st.ev.StationMagnitudes, staMag)
		}
	}

	sBlock := field(line, 105, 107)
	secondS, ok := floatAt(line, 110, 115)
	if !ok {
		return nil
	}
	st.phaseLine++
	pick := ogsPick(ids, st, strconv.Itoa(st.phaseLine), base, secondS,
		sta, "S", opts)
	ogsOnset(pick, sBlock)

	arrv := st.ori.Arrivals[len(st.ori.Arrivals)-1]
	if res, ok := floatAt(line, 122, 127); ok {
		arrv.TimeResidual = &res
	}
	if weight, ok := floatAt(line, 130, 133); ok {
		arrv.TimeWeight = &weight
	}
	return nil
}

func ogsPick(
	ids *catalog.IDGen, st *ogsState,
	pickID string, base qtime.Time, seconds float64,
	sta, phase string, opts *Options,
) *model.Pick {
	pick := &model.Pick{
		PublicID: ids.ID("event", st.oriID+"/pick/"+pickID),
		Time: model.NewTimeQuantity(base.Add(
			time.Duration(seconds * float64(time.Second)))),
		WaveformID: &model.WaveformStreamID{
			NetworkCode: opts.NetworkCode,
			StationCode: sta,
		},
		PhaseHint: &model.Phase{Code: phase},
	}
	st.ev.Picks = append(st.ev.Picks, pick)

	st.ori.Arrivals = append(st.ori.Arrivals, &model.Arrival{
		PickID: pick.PublicID,
		Phase:  &model.Phase{Code: phase},
	})
	return pick
}

func ogsOnset(pick *model.Pick, phaseBlock string) {
	if phaseBlock == "" {
		return
	}
	switch phaseBlock[0] {
	case 'e', 'E':
		pick.Onset = "emergent"
	case 'i', 'I':
		pick.Onset = "impulsive"
	}
}
