package ioformat

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

// The NDK format carries one event per five 80-character lines.
const (
	cmtLineLength    = 80
	cmtLinesPerEvent = 5
)

var (
	cmtDataUsedRe = regexp.MustCompile(`^B:(.+)S:(.+)M:(.+)$`)
	cmtCatalogRe  = regexp.MustCompile(`^CMT:catalog=(.*)$`)
	cmtAnalysisRe = regexp.MustCompile(`^CMT:analysis=(.*)$`)
	cmtVersionRe  = regexp.MustCompile(`^CMT:cmtVersion=(.*)$`)
)

// ImportCMT reads the Global CMT catalog in NDK format: five lines per
// event carrying the reference hypocenter, inversion metadata, the
// centroid solution, the moment tensor elements and the principal-axis
// decomposition. A malformed line drops the rest of its five-line
// record; whatever was already attached to the event is kept, matching
// the way partially readable records are salvaged.
func ImportCMT(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("CMT"))

	in := newLines(r)
	rec := make([]string, 0, cmtLinesPerEvent)
	recStart := 0
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		if len(rec) == 0 {
			recStart = in.N()
		}
		if len(line) > cmtLineLength {
			line = line[:cmtLineLength]
		}
		rec = append(rec, line)
		if len(rec) < cmtLinesPerEvent {
			continue
		}
		cmtRecord(cat, ids, rec, recStart)
		rec = rec[:0]
	}
	if len(rec) > 0 {
		skipRecord(FormatCMT, recStart, rec[0], "truncated 5-line record")
	}
	return nil
}

func cmtRecord(cat *catalog.Catalog, ids *catalog.IDGen, rec []string, recStart int) {
	// The unique CMT event name on line 2 keys every identifier of
	// the record.
	name := field(rec[1], 0, 16)
	local := name
	if local == "" {
		local = strconv.Itoa(recStart)
	}

	ev, ori, ok := cmtHypocenter(ids, rec[0], local, recStart)
	if !ok {
		return
	}
	cat.AddEvent(ev)

	fm, mt, ok := cmtInversionInfo(ids, rec[1], name, local, recStart)
	if !ok {
		return
	}
	fm.TriggeringOriginID = ori.PublicID
	ev.FocalMechanisms = append(ev.FocalMechanisms, fm)
	ev.PreferredFocalMechanismID = fm.PublicID

	if !cmtCentroid(ids, rec[2], local, recStart, ev, ori, fm, mt) {
		return
	}

	exponent, ok := cmtTensor(rec[3], recStart, mt)
	if !ok {
		return
	}
	cmtAxesAndPlanes(ids, rec[4], name, local, recStart, exponent, ev, ori, fm, mt)
}

// cmtHypocenter parses the first NDK line: reference catalog code,
// date/time, location, reported mb and MS, and the region name.
func cmtHypocenter(
	ids *catalog.IDGen, line, local string, lineNo int,
) (*model.Event, *model.Origin, bool) {
	lat, okLat := floatAt(line, 26, 33)
	lon, okLon := floatAt(line, 33, 41)
	depthKM, okDepth := floatAt(line, 41, 47)
	if !(okLat && okLon && okDepth) {
		skipRecord(FormatCMT, lineNo, line, "malformed hypocenter line")
		return nil, nil, false
	}

	dateStr := slice(line, 5, 15)
	timeStr := slice(line, 16, 26)
	year, okY := parseInt(slice(dateStr, 0, 4))
	month, okMo := parseInt(slice(dateStr, 5, 7))
	day, okD := parseInt(slice(dateStr, 8, 10))
	hour, okH := parseInt(slice(timeStr, 0, 2))
	minute, okMi := parseInt(slice(timeStr, 3, 5))
	sec, okS := parseFloat(slice(timeStr, 6, len(timeStr)))
	if !(okY && okMo && okD && okH && okMi && okS) {
		skipRecord(FormatCMT, lineNo, line, "malformed hypocenter date/time")
		return nil, nil, false
	}

	// NDK sometimes carries seconds=60.0; fold it into the next minute.
	addSecond := sec == 60.0
	if addSecond {
		sec = 59.0
	}
	t := qtime.Date(year, time.Month(month), day, hour, minute, sec)
	if addSecond {
		t = t.Add(time.Second)
	}

	ev := &model.Event{PublicID: ids.ID("event", local)}
	if region := field(line, 55, 80); region != "" {
		ev.Descriptions = append(ev.Descriptions, &model.EventDescription{
			Text: region, Type: "region name",
		})
	}

	ori := &model.Origin{
		PublicID:  ids.ID("origin", local),
		Time:      model.NewTimeQuantity(t),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
		Depth:     model.NewRealQuantity(1000 * depthKM),
	}
	if refCatalog := field(line, 0, 4); refCatalog != "" {
		ori.Comments = append(ori.Comments, &model.Comment{
			Text: "CMT:catalog=" + refCatalog,
		})
	}
	ev.Origins = append(ev.Origins, ori)

	// Two reported magnitudes, usually mb and MS; a zero value means
	// the slot is empty.
	magStr := slice(line, 47, 55)
	mb, okMB := parseFloat(slice(magStr, 0, 4))
	ms, okMS := parseFloat(slice(magStr, 4, 8))
	if !okMB || !okMS {
		skipRecord(FormatCMT, lineNo, line, "malformed hypocenter magnitudes")
		return ev, ori, false
	}
	if mb > 0.0 {
		mag := &model.Magnitude{
			PublicID: ids.Sub("magnitude", local, 1),
			Mag:      model.NewRealQuantity(mb),
			Type:     "mb",
			OriginID: ori.PublicID,
		}
		ev.Magnitudes = append(ev.Magnitudes, mag)
		ev.PreferredMagnitudeID = mag.PublicID
	}
	if ms > 0.0 {
		ev.Magnitudes = append(ev.Magnitudes, &model.Magnitude{
			PublicID: ids.Sub("magnitude", local, 2),
			Mag:      model.NewRealQuantity(ms),
			Type:     "MS",
			OriginID: ori.PublicID,
		})
	}
	return ev, ori, true
}

// cmtInversionInfo parses the second NDK line: data used in the
// inversion, the source type constraint, and the assumed moment-rate
// function.
func cmtInversionInfo(
	ids *catalog.IDGen, line, name, local string, lineNo int,
) (*model.FocalMechanism, *model.MomentTensor, bool) {
	fm := &model.FocalMechanism{PublicID: ids.ID("cmt", name)}
	mt := &model.MomentTensor{PublicID: ids.ID("momenttensor", local)}

	du := cmtDataUsedRe.FindStringSubmatch(field(line, 17, 61))
	if du == nil {
		skipRecord(FormatCMT, lineNo, line, "malformed dataUsed block")
		return nil, nil, false
	}
	waveTypes := []string{"body waves", "surface waves", "mantle waves"}
	for i, part := range du[1:] {
		staCnt, okSta := parseInt(slice(part, 0, 3))
		compCnt, okComp := parseInt(slice(part, 3, 8))
		period, okPer := parseFloat(slice(part, 8, 12))
		if !(okSta && okComp && okPer) {
			skipRecord(FormatCMT, lineNo, line, "malformed dataUsed counts")
			return nil, nil, false
		}
		if staCnt > 0 {
			mt.DataUsed = append(mt.DataUsed, &model.DataUsed{
				WaveType:       waveTypes[i],
				StationCount:   &staCnt,
				ComponentCount: &compCnt,
				ShortestPeriod: &period,
			})
		}
	}

	sourceType := field(line, 62, 68)
	method, okMethod := parseInt(strings.TrimSpace(
		strings.TrimPrefix(sourceType, "CMT:")))
	if !okMethod {
		skipRecord(FormatCMT, lineNo, line, "malformed source type")
		return nil, nil, false
	}
	switch method {
	case 0:
		mt.InversionType = "general"
	case 1:
		mt.InversionType = "zero trace"
	case 2:
		mt.InversionType = "double couple"
	default:
		skipRecord(FormatCMT, lineNo, line, "illegal source type constraint")
		return nil, nil, false
	}

	// "TRIHD:  0.6" carries half the duration of the moment-rate
	// function.
	stfType, stfHalf, okSTF := strings.Cut(field(line, 69, 80), ":")
	half, okHalf := parseFloat(stfHalf)
	if !okSTF || !okHalf {
		skipRecord(FormatCMT, lineNo, line, "malformed moment-rate function")
		return nil, nil, false
	}
	stf := &model.SourceTimeFunction{Duration: 2.0 * half}
	switch strings.TrimSpace(stfType) {
	case "TRIHD":
		stf.Type = "triangle"
	case "BOXHD":
		stf.Type = "box car"
	default:
		stf.Type = "unknown"
	}
	mt.SourceTimeFunction = stf

	fm.MomentTensors = append(fm.MomentTensors, mt)
	return fm, mt, true
}

// cmtCentroid parses the third NDK line into a derived origin that
// becomes the event's preferred origin.
func cmtCentroid(
	ids *catalog.IDGen, line, local string, lineNo int,
	ev *model.Event, ori *model.Origin,
	fm *model.FocalMechanism, mt *model.MomentTensor,
) bool {
	par := field(line, 0, 58)
	offset, ok1 := parseFloat(slice(par, 9, 18))
	offsetErr, ok2 := parseFloat(slice(par, 18, 22))
	lat, ok3 := parseFloat(slice(par, 22, 29))
	latErr, ok4 := parseFloat(slice(par, 29, 34))
	lon, ok5 := parseFloat(slice(par, 34, 42))
	lonErr, ok6 := parseFloat(slice(par, 42, 47))
	depthKM, ok7 := parseFloat(slice(par, 47, 53))
	depthErrKM, ok8 := parseFloat(slice(par, 53, 58))
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		skipRecord(FormatCMT, lineNo, line, "malformed centroid parameters")
		return false
	}

	derived := &model.Origin{
		PublicID:  ids.ID("origin", local+"/centroid"),
		Latitude:  model.NewRealQuantityErr(lat, latErr),
		Longitude: model.NewRealQuantityErr(lon, lonErr),
		Depth:     model.NewRealQuantityErr(1000*depthKM, 1000*depthErrKM),
	}
	t := ori.Time.Value.Add(
		time.Duration(math.Round(offset * float64(time.Second))))
	derived.Time = model.NewTimeQuantity(t)
	derived.Time.Uncertainty = &offsetErr

	switch field(line, 59, 63) {
	case "FREE":
		derived.DepthType = "from moment tensor inversion"
	case "FIX":
		derived.DepthType = "from location"
	case "BDY":
		derived.DepthType = "from modeling of broad-band P waveforms"
	default:
		derived.DepthType = "other"
	}

	ev.Origins = append(ev.Origins, derived)
	ev.PreferredOriginID = derived.PublicID
	mt.DerivedOriginID = derived.PublicID

	ts := field(line, 64, 80)
	analysis := ""
	switch slice(ts, 0, 1) {
	case "S":
		analysis = "standard"
	case "Q":
		analysis = "quick"
	}
	mt.Comments = append(mt.Comments, &model.Comment{
		Text: "CMT:analysis=" + analysis,
	})

	// A timestamp starting with 0 after the analysis prefix is a
	// placeholder, not a date.
	if slice(ts, 2, 3) != "0" {
		year, okY := parseInt(slice(ts, 2, 6))
		month, okMo := parseInt(slice(ts, 6, 8))
		day, okD := parseInt(slice(ts, 8, 10))
		hour, okH := parseInt(slice(ts, 10, 12))
		minute, okMi := parseInt(slice(ts, 12, 14))
		sec, okS := parseFloat(slice(ts, 14, len(ts)))
		if okY && okMo && okD && okH && okMi && okS {
			ct := qtime.Date(year, time.Month(month), day, hour, minute, sec)
			mt.CreationInfo = &model.CreationInfo{CreationTime: &ct}
			fm.CreationInfo = &model.CreationInfo{CreationTime: &ct}
		}
	}
	return true
}

// cmtTensor parses the fourth NDK line: the common exponent and the
// six moment tensor elements with their standard errors. Values are
// reconstructed from mantissa and exponent textually, so the result
// bit-matches the literal decimal the file encodes.
func cmtTensor(line string, lineNo int, mt *model.MomentTensor) (int, bool) {
	exponent, okExp := intAt(line, 0, 2)
	if !okExp {
		skipRecord(FormatCMT, lineNo, line, "malformed tensor exponent")
		return 0, false
	}
	expStr := strconv.Itoa(exponent)

	pairs := [6][2]string{}
	pos := 2
	for i := range pairs {
		pairs[i][0] = field(line, pos, pos+7)
		pairs[i][1] = field(line, pos+7, pos+13)
		pos += 13
	}

	quantities := [6]*model.RealQuantity{}
	for i, p := range pairs {
		value, errV := qmath.ExponentialFloatFromStrings(p[0], expStr)
		uncert, errU := qmath.ExponentialFloatFromStrings(p[1], expStr)
		if errV != nil || errU != nil {
			skipRecord(FormatCMT, lineNo, line, "malformed tensor element")
			return 0, false
		}
		quantities[i] = model.NewRealQuantityErr(value, uncert)
	}
	mt.Tensor = &model.Tensor{
		Mrr: quantities[0], Mtt: quantities[1], Mpp: quantities[2],
		Mrt: quantities[3], Mrp: quantities[4], Mtp: quantities[5],
	}
	return exponent, true
}

// cmtAxesAndPlanes parses the fifth NDK line: version code, principal
// axes, scalar moment and the two nodal planes. The scalar moment
// also yields the MW magnitude via Kanamori (1977).
func cmtAxesAndPlanes(
	ids *catalog.IDGen, line, name, local string, lineNo, exponent int,
	ev *model.Event, ori *model.Origin,
	fm *model.FocalMechanism, mt *model.MomentTensor,
) {
	expStr := strconv.Itoa(exponent)

	type axisIn struct{ ei, pl, az string }
	axes := [3]axisIn{
		{field(line, 3, 11), field(line, 11, 14), field(line, 14, 18)},
		{field(line, 18, 26), field(line, 26, 29), field(line, 29, 33)},
		{field(line, 33, 41), field(line, 41, 44), field(line, 44, 48)},
	}
	scalarMoment := field(line, 48, 56)

	planes := [2][3]string{
		{field(line, 56, 60), field(line, 60, 63), field(line, 63, 68)},
		{field(line, 68, 72), field(line, 72, 75), field(line, 75, 80)},
	}

	built := [3]*model.Axis{}
	for i, a := range axes {
		length, errL := qmath.ExponentialFloatFromStrings(a.ei, expStr)
		plunge, okP := parseFloat(a.pl)
		azimuth, okA := parseFloat(a.az)
		if errL != nil || !okP || !okA {
			skipRecord(FormatCMT, lineNo, line, "malformed principal axes")
			return
		}
		built[i] = &model.Axis{
			Azimuth: model.NewRealQuantity(azimuth),
			Plunge:  model.NewRealQuantity(plunge),
			Length:  model.NewRealQuantity(length),
		}
	}

	scm, errSCM := qmath.ExponentialFloatFromStrings(scalarMoment, expStr)
	if errSCM != nil {
		skipRecord(FormatCMT, lineNo, line, "malformed scalar moment")
		return
	}

	np := [2]*model.NodalPlane{}
	for i, p := range planes {
		strike, okS := parseFloat(p[0])
		dip, okD := parseFloat(p[1])
		rake, okR := parseFloat(p[2])
		if !(okS && okD && okR) {
			skipRecord(FormatCMT, lineNo, line, "malformed nodal planes")
			return
		}
		np[i] = &model.NodalPlane{
			Strike: model.NewRealQuantity(strike),
			Dip:    model.NewRealQuantity(dip),
			Rake:   model.NewRealQuantity(rake),
		}
	}

	if version := field(line, 0, 3); version != "" {
		mt.Comments = append(mt.Comments, &model.Comment{
			Text: "CMT:cmtVersion=" + version,
		})
	}

	mt.ScalarMoment = model.NewRealQuantity(scm)

	// scalar moment M0 (dyne-cm) to moment magnitude:
	// MW = (2/3) * (log10(M0) - 16.1), Kanamori (1977)
	mw := &model.Magnitude{
		PublicID: ids.ID("magnitude", name),
		Mag:      model.NewRealQuantity(2 * (math.Log10(scm) - 16.1) / 3.0),
		Type:     "MW",
		OriginID: ori.PublicID,
	}
	ev.Magnitudes = append(ev.Magnitudes, mw)
	ev.PreferredMagnitudeID = mw.PublicID

	fm.PrincipalAxes = &model.PrincipalAxes{
		TAxis: built[0], PAxis: built[1], NAxis: built[2],
	}
	fm.NodalPlanes = &model.NodalPlanes{
		NodalPlane1: np[0], NodalPlane2: np[1],
	}
}

// ExportCMT writes the catalog back into NDK format. Events without
// a focal mechanism carrying a moment tensor are skipped.
func ExportCMT(cat *catalog.Catalog, w io.Writer) error {
	ids := cat.IDs().WithAuthority("CMT")
	// The CMT event name is recovered by stripping the identifier
	// prefix the importer used.
	cmtPrefix := strings.TrimSuffix(ids.ID("cmt", "x"), "x")

	for _, ev := range cat.Events() {
		fm := ev.PreferredFocalMechanism()
		if fm == nil || len(fm.MomentTensors) == 0 {
			continue
		}
		mt := fm.MomentTensors[0]
		trig := findOrigin(ev, fm.TriggeringOriginID)
		derived := findOrigin(ev, mt.DerivedOriginID)
		if trig == nil || derived == nil || mt.Tensor == nil ||
			mt.ScalarMoment == nil {
			continue
		}

		var sb strings.Builder
		cmtWriteHypocenter(&sb, ev, trig)
		cmtWriteInversionInfo(&sb, fm, mt, cmtPrefix)
		cmtWriteCentroid(&sb, trig, derived, mt)

		mantissa, exponent := qmath.NormalizeFloat(mt.ScalarMoment.Value)
		cmtWriteTensor(&sb, mt, exponent)
		cmtWriteAxesAndPlanes(&sb, fm, mantissa, exponent)

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return writeError(err)
		}
	}
	return nil
}

func findOrigin(ev *model.Event, id string) *model.Origin {
	for _, o := range ev.Origins {
		if o.PublicID == id {
			return o
		}
	}
	return nil
}

func commentMatch(comments []*model.Comment, re *regexp.Regexp) string {
	for _, c := range comments {
		if m := re.FindStringSubmatch(c.Text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func cmtWriteHypocenter(sb *strings.Builder, ev *model.Event, trig *model.Origin) {
	if ref := commentMatch(trig.Comments, cmtCatalogRe); ref != "" {
		fmt.Fprintf(sb, "%-4s ", strings.ToUpper(ref))
	} else {
		sb.WriteString("     ")
	}

	fmt.Fprintf(sb, "%-21s", trig.Time.Value.Std().Format("2006/01/02 15:04:05"))
	fmt.Fprintf(sb, "%7.2f", trig.Latitude.Value)
	fmt.Fprintf(sb, "%8.2f", trig.Longitude.Value)
	depthKM := 0.0
	if trig.Depth != nil {
		depthKM = trig.Depth.Value / 1000.0
	}
	fmt.Fprintf(sb, "%6.1f", depthKM)

	mb, ms := 0.0, 0.0
	for _, m := range ev.MagnitudesForOrigin(trig) {
		switch strings.ToLower(m.Type) {
		case "mb":
			if mb == 0.0 && m.Mag != nil {
				mb = m.Mag.Value
			}
		case "ms":
			if ms == 0.0 && m.Mag != nil {
				ms = m.Mag.Value
			}
		}
	}
	fmt.Fprintf(sb, "%4.1f", mb)
	fmt.Fprintf(sb, "%4.1f", ms)

	region := ""
	for _, d := range ev.Descriptions {
		if d.Type == "region name" {
			region = strings.ToUpper(d.Text)
			break
		}
	}
	fmt.Fprintf(sb, " %-24s\n", region)
}

func cmtWriteInversionInfo(
	sb *strings.Builder, fm *model.FocalMechanism, mt *model.MomentTensor,
	cmtPrefix string,
) {
	name := ""
	if strings.HasPrefix(fm.PublicID, cmtPrefix) {
		name = fm.PublicID[len(cmtPrefix):]
	}
	fmt.Fprintf(sb, "%-16s", name)

	counts := map[string][3]int{}
	for _, du := range mt.DataUsed {
		var sta, comp, per int
		if du.StationCount != nil {
			sta = *du.StationCount
		}
		if du.ComponentCount != nil {
			comp = *du.ComponentCount
		}
		if du.ShortestPeriod != nil {
			per = int(*du.ShortestPeriod)
		}
		counts[strings.ToLower(du.WaveType)] = [3]int{sta, comp, per}
	}
	for _, wt := range []struct{ tag, key string }{
		{" B:", "body waves"},
		{" S:", "surface waves"},
		{" M:", "mantle waves"},
	} {
		c := counts[wt.key]
		fmt.Fprintf(sb, "%s%3d%5d%4d", wt.tag, c[0], c[1], c[2])
	}

	method := 1
	switch strings.ToLower(mt.InversionType) {
	case "general":
		method = 0
	case "double couple", "double-couple":
		method = 2
	}
	fmt.Fprintf(sb, " CMT: %1d", method)

	stfTag := " TRIHD:"
	halfDuration := 0.0
	if mt.SourceTimeFunction != nil {
		switch strings.ToLower(mt.SourceTimeFunction.Type) {
		case "box car", "boxcar":
			stfTag = " BOXHD:"
		}
		halfDuration = 0.5 * mt.SourceTimeFunction.Duration
	}
	fmt.Fprintf(sb, "%s%5.1f\n", stfTag, halfDuration)
}

func cmtWriteCentroid(
	sb *strings.Builder, trig, derived *model.Origin, mt *model.MomentTensor,
) {
	sb.WriteString("CENTROID:")

	timeDiff := derived.Time.Value.Std().Sub(trig.Time.Value.Std()).Seconds()
	timeErr := 0.0
	if derived.Time.Uncertainty != nil {
		timeErr = *derived.Time.Uncertainty
	}
	fmt.Fprintf(sb, "%9.1f%4.1f", timeDiff, timeErr)

	fmt.Fprintf(sb, "%7.2f%5.2f",
		derived.Latitude.Value, deref(derived.Latitude.Uncertainty))
	fmt.Fprintf(sb, "%8.2f%5.2f",
		derived.Longitude.Value, deref(derived.Longitude.Uncertainty))
	fmt.Fprintf(sb, "%6.1f%5.1f",
		derived.Depth.Value/1000.0, deref(derived.Depth.Uncertainty)/1000.0)

	switch strings.ToLower(derived.DepthType) {
	case "from moment tensor inversion":
		sb.WriteString(" FREE")
	case "from modeling of broad-band p waveforms":
		sb.WriteString(" BDY ")
	default:
		sb.WriteString(" FIX ")
	}

	if commentMatch(mt.Comments, cmtAnalysisRe) == "quick" {
		sb.WriteString(" Q-")
	} else {
		sb.WriteString(" S-")
	}
	if mt.CreationInfo != nil && mt.CreationInfo.CreationTime != nil {
		sb.WriteString(mt.CreationInfo.CreationTime.Std().Format("20060102150405"))
	} else {
		sb.WriteString("00000000000000")
	}
	sb.WriteString("\n")
}

func cmtWriteTensor(sb *strings.Builder, mt *model.MomentTensor, exponent int) {
	power := math.Pow(10, float64(exponent))
	fmt.Fprintf(sb, "%02d", exponent)
	for _, q := range []*model.RealQuantity{
		mt.Tensor.Mrr, mt.Tensor.Mtt, mt.Tensor.Mpp,
		mt.Tensor.Mrt, mt.Tensor.Mrp, mt.Tensor.Mtp,
	} {
		fmt.Fprintf(sb, "%7.3f%6.3f", q.Value/power, deref(q.Uncertainty)/power)
	}
	sb.WriteString("\n")
}

func cmtWriteAxesAndPlanes(
	sb *strings.Builder, fm *model.FocalMechanism, mantissa float64, exponent int,
) {
	power := math.Pow(10, float64(exponent))

	if version := commentMatch(fmComments(fm), cmtVersionRe); version != "" {
		fmt.Fprintf(sb, "%-3s ", version)
	} else {
		sb.WriteString("    ")
	}

	axes := [3]*model.Axis{}
	if fm.PrincipalAxes != nil {
		axes[0] = fm.PrincipalAxes.TAxis
		axes[1] = fm.PrincipalAxes.PAxis
		axes[2] = fm.PrincipalAxes.NAxis
	}
	widths := [3]string{"%7.3f%3d%4d", "%8.3f%3d%4d", "%8.3f%3d%4d"}
	for i, ax := range axes {
		ev, pl, az := 0.0, 0, 0
		if ax != nil {
			ev = ax.Length.Value / power
			pl = int(ax.Plunge.Value)
			az = int(ax.Azimuth.Value)
		}
		fmt.Fprintf(sb, widths[i], ev, pl, az)
	}

	fmt.Fprintf(sb, "%8.3f", mantissa)

	planes := [2]*model.NodalPlane{}
	if fm.NodalPlanes != nil {
		planes[0] = fm.NodalPlanes.NodalPlane1
		planes[1] = fm.NodalPlanes.NodalPlane2
	}
	for _, p := range planes {
		strike, dip, rake := 0, 0, 0
		if p != nil {
			strike = int(p.Strike.Value)
			dip = int(p.Dip.Value)
			rake = int(p.Rake.Value)
		}
		fmt.Fprintf(sb, "%4d%3d%5d", strike, dip, rake)
	}
	sb.WriteString("\n")
}

// fmComments gathers the comments of the mechanism's first moment
// tensor, where the version micro-format lives.
func fmComments(fm *model.FocalMechanism) []*model.Comment {
	if len(fm.MomentTensors) > 0 {
		return fm.MomentTensors[0].Comments
	}
	return nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0.0
	}
	return *p
}
