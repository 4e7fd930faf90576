package ioformat

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
)

const (
	// jmaTimeShiftJST is the offset of Japan Standard Time from UTC.
	// Deck lines carry JST; all stored times are UTC.
	jmaTimeShiftJST = 9 * time.Hour

	jmaAgencyJMA  = "JMA"
	jmaAgencyUSGS = "USGS"
	jmaAgencyISC  = "ISC"
)

// jmaMagnitudeSlots are the two magnitude columns of a hypocenter line:
// a two-digit coded value followed by a one-letter type.
var jmaMagnitudeSlots = [2]struct {
	from, to, typeFrom, typeTo int
}{
	{52, 54, 54, 55},
	{55, 57, 57, 58},
}

// jmaEvent accumulates one deck block (hypocenter lines, optional
// comment lines, phase lines) until the 'E' separator closes it.
type jmaEvent struct {
	ev        *model.Event
	local     string
	jmaOrigin *model.Origin

	// year, month, day of the current hypocenter line; phase lines
	// carry only the day and borrow the rest from here.
	year  int
	month int
	day   int

	comment strings.Builder
}

// ImportJMA reads the Japanese JMA catalog in "deck" format. A block
// consists of one or more hypocenter lines (JMA, USGS or ISC
// solutions), optional comment lines, phase lines attached to the JMA
// solution, and an 'E' separator. Times are converted from JST to UTC.
func ImportJMA(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority(jmaAgencyJMA))

	var cur *jmaEvent

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		if blank(line) {
			continue
		}
		switch line[0] {
		case 'J', 'U', 'I':
			cur = jmaHypocenter(cat, ids, cur, line, in.N(), opts)
		case '_':
			if opts.NoPicks || cur == nil {
				continue
			}
			if cur.jmaOrigin == nil {
				return phaseOrphanError(in.N())
			}
			jmaPhases(ids, cur, line, in.N())
		case 'C':
			if cur != nil {
				cur.comment.WriteString(" ")
				cur.comment.WriteString(strings.TrimSpace(slice(line, 2, len(line))))
			}
		case 'E':
			jmaFinishEvent(cur)
			cur = nil
		}
	}
	jmaFinishEvent(cur)
	return nil
}

// jmaHypocenter parses one hypocenter line. Lines without complete
// focal time information do not yield a valid event and are dropped.
// The returned block is cur unchanged when the line is skipped, or a
// new block when this line starts one.
func jmaHypocenter(
	cat *catalog.Catalog, ids *catalog.IDGen, cur *jmaEvent,
	line string, lineNo int, opts *Options,
) *jmaEvent {
	source := line[0]

	year, okY := intAt(line, 1, 5)
	month, okMo := intAt(line, 5, 7)
	day, okD := intAt(line, 7, 9)
	hour, okH := intAt(line, 9, 11)
	minute, okMi := intAt(line, 11, 13)
	second, okS := joinDecimal(slice(line, 13, 15), slice(line, 15, 17))
	if !(okY && okMo && okD && okH && okMi && okS) {
		// Incomplete focal time, not a valid hypocenter.
		return cur
	}
	if opts.JMAOnly && source != 'J' {
		return cur
	}

	local := field(line, 0, 17)

	// Additional hypocenter lines of the same block contribute more
	// origins to the event the first one created.
	if cur == nil {
		cur = &jmaEvent{
			ev:    &model.Event{PublicID: ids.ID("event", local)},
			local: local,
		}
		cat.AddEvent(cur.ev)
	}
	cur.year, cur.month, cur.day = year, month, day
	ev := cur.ev

	ori := &model.Origin{
		PublicID: ids.ID("origin", local),
		Time: model.NewTimeQuantity(qtime.CorrectedDate(
			year, time.Month(month), day, hour, minute, second).
			Add(-jmaTimeShiftJST)),
		CreationInfo: &model.CreationInfo{},
	}
	ev.Origins = append(ev.Origins, ori)

	switch source {
	case 'J':
		ori.CreationInfo.AgencyID = jmaAgencyJMA
		cur.jmaOrigin = ori
		ev.PreferredOriginID = ori.PublicID
	case 'U':
		ori.CreationInfo.AgencyID = jmaAgencyUSGS
	case 'I':
		ori.CreationInfo.AgencyID = jmaAgencyISC
	}

	// Coordinates are degrees plus decimal minutes without a decimal
	// point; depth determined by the depth slice method has no fraction.
	if latMin, ok := joinDecimal(slice(line, 24, 26), slice(line, 26, 28)); ok {
		if latDeg, ok := floatAt(line, 22, 24); ok {
			ori.Latitude = model.NewRealQuantity(latDeg + latMin/60.0)
		}
	}
	if lonMin, ok := joinDecimal(slice(line, 36, 38), slice(line, 38, 40)); ok {
		if lonDeg, ok := floatAt(line, 33, 36); ok {
			ori.Longitude = model.NewRealQuantity(lonDeg + lonMin/60.0)
		}
	}
	if depthKM, ok := joinDecimal(slice(line, 44, 47), slice(line, 47, 49)); ok {
		ori.Depth = model.NewRealQuantity(1000 * depthKM)
	}

	if secErr, ok := joinDecimal(slice(line, 17, 19), slice(line, 19, 21)); ok {
		ori.Time.Uncertainty = &secErr
	}
	if latErrMin, ok := joinDecimal(slice(line, 28, 30), slice(line, 30, 32)); ok {
		v := latErrMin / 60.0
		if ori.Latitude != nil {
			ori.Latitude.Uncertainty = &v
		}
	}
	if lonErrMin, ok := joinDecimal(slice(line, 40, 42), slice(line, 42, 44)); ok {
		v := lonErrMin / 60.0
		if ori.Longitude != nil {
			ori.Longitude.Uncertainty = &v
		}
	}
	if depthErr, ok := joinDecimal(slice(line, 49, 50), slice(line, 50, 52)); ok {
		if ori.Depth != nil {
			v := 1000 * depthErr
			ori.Depth.Uncertainty = &v
		}
	}

	for n, slot := range jmaMagnitudeSlots {
		code := slice(line, slot.from, slot.to)
		magVal, ok := jmaMagnitudeValue(code)
		if !ok {
			if strings.TrimSpace(code) != "" {
				skipRecord(FormatJMA, lineNo, line, "illegal magnitude code "+code)
			}
			continue
		}
		mag := &model.Magnitude{
			PublicID: ids.Sub("magnitude", local, n+1),
			Mag:      model.NewRealQuantity(magVal),
			OriginID: ori.PublicID,
		}
		ev.Magnitudes = append(ev.Magnitudes, mag)

		switch magType := field(line, slot.typeFrom, slot.typeTo); magType {
		case "J":
			mag.Type = "MJ"
		case "d", "D":
			mag.Type = "MD"
		case "v", "V":
			mag.Type = "MV"
		case "B":
			mag.Type = "mb"
		case "S":
			mag.Type = "MS"
		default:
			mag.Type = "unknown"
		}
		switch mag.Type {
		case "MS", "unknown":
		case "mb":
			mag.CreationInfo = &model.CreationInfo{AgencyID: jmaAgencyUSGS}
		default:
			mag.CreationInfo = &model.CreationInfo{AgencyID: jmaAgencyJMA}
		}
	}
	if len(ev.Magnitudes) > 0 {
		ev.PreferredMagnitudeID = ev.Magnitudes[0].PublicID
	}

	// Subsidiary classification: 1 natural, 2 too few JMA stations,
	// 3 artificial, 4 noise, 5 low frequency earthquake. 1, 2 and 5
	// count as earthquakes.
	if subsidiary := field(line, 60, 61); subsidiary != "" {
		switch subsidiary {
		case "1", "2", "5":
			ev.Type = model.TypeEarthquake
		}
		ev.Comments = append(ev.Comments, &model.Comment{
			Text: "JMA:subsidiary=" + subsidiary,
		})
	}
	if region := field(line, 68, 92); region != "" {
		ev.Descriptions = append(ev.Descriptions, &model.EventDescription{
			Text: region, Type: "region name",
		})
	}
	if cnt, ok := intAt(line, 92, 95); ok {
		originQuality(ori).UsedStationCount = &cnt
	}
	return cur
}

// jmaMagnitudeValue decodes the two-character magnitude field. Values
// >= 0 are F2.1 without the decimal point, -1..-9 mean -0.1..-0.9, and
// letter codes A/B/C carry magnitudes below -1. A trailing blank is
// read as a missing zero; a leading blank is not recoverable.
func jmaMagnitudeValue(code string) (float64, bool) {
	if strings.TrimSpace(code) == "" || len(code) < 2 {
		return 0, false
	}
	if code != strings.TrimSpace(code) {
		if strings.TrimSpace(code[0:1]) == "" {
			return 0, false
		}
		code = code[0:1] + "0"
	}
	if n, ok := parseInt(code); ok {
		if n >= 0 {
			return parseFloat(code[0:1] + "." + code[1:2])
		}
		return parseFloat("-0." + code[1:2])
	}
	var whole string
	switch code[0] {
	case 'A':
		whole = "-1"
	case 'B':
		whole = "-2"
	case 'C':
		whole = "-3"
	default:
		return 0, false
	}
	if code[1] < '0' || code[1] > '9' {
		return 0, false
	}
	return parseFloat(whole + "." + code[1:2])
}

// jmaPhases parses one phase line, which carries a first phase and
// optionally a second one at the same station. Pick times reuse year
// and month of the focal time and are shifted from JST to UTC; the
// second phase borrows its date and hour from the first pick.
func jmaPhases(ids *catalog.IDGen, cur *jmaEvent, line string, lineNo int) {
	firstPhase := field(line, 15, 19)
	if firstPhase == "" {
		return
	}

	sta := field(line, 1, 7)
	day, okD := intAt(line, 13, 15)
	hour, okH := intAt(line, 19, 21)
	minute, okM := intAt(line, 21, 23)
	sec, okS := joinDecimal(slice(line, 23, 25), slice(line, 25, 27))
	if !(okD && okH && okM && okS) {
		skipRecord(FormatJMA, lineNo, line, "malformed phase time")
		return
	}

	pickID := field(line, 19, 27)

	pickTime := qtime.CorrectedDate(
		cur.year, time.Month(cur.month), day, hour, minute, sec).
		Add(-jmaTimeShiftJST)
	if cur.day-day > 1 {
		// Focal time at the end of a month, pick in the next one.
		pickTime = pickTime.AddDate(0, 1, 0)
	}

	pick := jmaPick(ids, cur, pickID, pickTime, sta, firstPhase)

	secondPhase := field(line, 27, 31)
	if secondPhase == "" {
		return
	}
	minute2, okM2 := intAt(line, 31, 33)
	sec2, okS2 := joinDecimal(slice(line, 33, 35), slice(line, 35, 37))
	if !(okM2 && okS2) {
		skipRecord(FormatJMA, lineNo, line, "malformed second phase time")
		return
	}

	pickID2 := strconv.Itoa(hour) + field(line, 31, 37)

	first := pick.Time.Value.Std()
	comp, carry := qtime.FixTimeComponents(first.Hour(), minute2, sec2)
	second := qtime.Adjust(carry, qtime.Date(
		first.Year(), first.Month(), first.Day(),
		comp.Hour, comp.Minute, comp.Second))
	if second.Before(*pick.Time.Value) {
		second = second.Add(time.Hour)
	}

	jmaPick(ids, cur, pickID2, second, sta, secondPhase)
}

func jmaPick(
	ids *catalog.IDGen, cur *jmaEvent,
	pickID string, t qtime.Time, sta, phase string,
) *model.Pick {
	pick := &model.Pick{
		PublicID: ids.ID("event", cur.local+"/pick/"+pickID),
		Time:     model.NewTimeQuantity(t),
		WaveformID: &model.WaveformStreamID{
			NetworkCode: jmaAgencyJMA,
			StationCode: sta,
		},
	}
	cur.ev.Picks = append(cur.ev.Picks, pick)

	cur.jmaOrigin.Arrivals = append(cur.jmaOrigin.Arrivals, &model.Arrival{
		PickID: pick.PublicID,
		Phase:  &model.Phase{Code: phase},
	})
	return pick
}

// jmaFinishEvent closes a deck block: attaches the accumulated comment
// and settles preferred origin and magnitude. The JMA solution is
// preferred when present, even if incomplete; otherwise the first
// origin wins. The preferred magnitude follows the chosen origin.
func jmaFinishEvent(cur *jmaEvent) {
	if cur == nil || cur.ev == nil {
		return
	}
	ev := cur.ev

	if text := strings.TrimSpace(cur.comment.String()); text != "" {
		ev.Comments = append(ev.Comments, &model.Comment{Text: text})
	}

	if len(ev.Origins) == 0 {
		return
	}
	preferred := ev.Origins[0]
	for _, ori := range ev.Origins {
		if ori.CreationInfo != nil && ori.CreationInfo.AgencyID == jmaAgencyJMA {
			preferred = ori
			break
		}
	}
	ev.PreferredOriginID = preferred.PublicID
	if mags := ev.MagnitudesForOrigin(preferred); len(mags) > 0 {
		ev.PreferredMagnitudeID = mags[0].PublicID
	}
}
