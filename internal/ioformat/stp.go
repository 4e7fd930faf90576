package ioformat

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

// Token counts distinguish the two STP line kinds.
const (
	stpEventTokens = 9
	stpPhaseTokens = 13
)

// ImportSTP reads phase output of the Seismogram Transfer Program as
// served by the SCSN: an event line followed by the phase lines that
// belong to it. Any other token count is a hard format error, and a
// phase line before the first event line has nothing to attach to.
func ImportSTP(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("SCSN"))

	var (
		ev      *model.Event
		ori     *model.Origin
		pickCnt int
		local   string
	)

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		tokens := strings.Fields(line)
		switch len(tokens) {
		case 0:
			continue
		case stpEventTokens:
			var err error
			ev, ori, err = stpEvent(ids, tokens, in.N(), line)
			if err != nil {
				return err
			}
			local = tokens[0]
			pickCnt = 0
			cat.AddEvent(ev)
		case stpPhaseTokens:
			if opts.NoPicks {
				continue
			}
			if ev == nil {
				return phaseOrphanError(in.N())
			}
			pickCnt++
			stpPhase(ids, tokens, ev, ori, local, pickCnt)
		default:
			return tokenCountError(in.N(), len(tokens))
		}
	}
	return nil
}

func stpEvent(
	ids *catalog.IDGen, tokens []string, lineNo int, line string,
) (*model.Event, *model.Origin, error) {
	local := tokens[0]

	ev := &model.Event{PublicID: ids.ID("event", local)}
	switch tokens[1] {
	case "le", "re", "ts":
		ev.Type = model.TypeEarthquake
	case "qb":
		ev.Type = model.TypeQuarryBlast
	case "nt":
		ev.Type = model.TypeNuclearExplosion
	case "sn":
		ev.Type = "sonic blast"
	}

	dt := tokens[2]
	year, okY := parseInt(slice(dt, 0, 4))
	month, okMo := parseInt(slice(dt, 5, 7))
	day, okD := parseInt(slice(dt, 8, 10))
	hour, okH := parseInt(slice(dt, 11, 13))
	minute, okMi := parseInt(slice(dt, 14, 16))
	sec, okS := parseFloat(slice(dt, 17, len(dt)))

	lat, okLat := parseFloat(tokens[3])
	lon, okLon := parseFloat(tokens[4])
	depthKM, okDepth := parseFloat(tokens[5])
	magVal, okMag := parseFloat(tokens[6])

	if !(okY && okMo && okD && okH && okMi && okS &&
		okLat && okLon && okDepth && okMag) {
		return nil, nil, lineError(lineNo, line)
	}

	ori := &model.Origin{
		PublicID: ids.ID("origin", local),
		Time: model.NewTimeQuantity(qtime.Date(
			year, time.Month(month), day, hour, minute, sec)),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
		Depth:     model.NewRealQuantity(1000 * depthKM),
	}
	ev.Origins = append(ev.Origins, ori)
	ev.PreferredOriginID = ori.PublicID

	mag := &model.Magnitude{
		PublicID: ids.ID("magnitude", local),
		Mag:      model.NewRealQuantity(magVal),
		Type:     stpMagnitudeType(tokens[7]),
		OriginID: ori.PublicID,
	}
	ev.Magnitudes = append(ev.Magnitudes, mag)
	ev.PreferredMagnitudeID = mag.PublicID

	return ev, ori, nil
}

func stpMagnitudeType(code string) string {
	switch code {
	case "b":
		return "MB"
	case "l":
		return "ML"
	case "s":
		return "MS"
	case "c":
		return "Md"
	case "w":
		return "MW"
	case "e":
		return "ME"
	case "h":
		return "helicorder magnitude"
	}
	return "unknown"
}

// stpPhase attaches one phase line to the current event: a pick at the
// given offset from origin time, and an arrival with geodesic azimuth
// and distance computed from the station coordinates the line carries.
func stpPhase(
	ids *catalog.IDGen, tokens []string,
	ev *model.Event, ori *model.Origin, local string, pickCnt int,
) {
	offset, okOff := parseFloat(tokens[12])
	if !okOff {
		return
	}

	pick := &model.Pick{
		PublicID: ids.ID("event",
			fmt.Sprintf("%s/pick/%d", local, pickCnt)),
		Time: model.NewTimeQuantity(ori.Time.Value.Add(
			time.Duration(offset * float64(time.Second)))),
		WaveformID: &model.WaveformStreamID{
			NetworkCode: tokens[0],
			StationCode: tokens[1],
			ChannelCode: tokens[2],
		},
	}
	if tokens[3] != "--" {
		pick.WaveformID.LocationCode = tokens[3]
	}
	switch tokens[9] {
	case "e":
		pick.Onset = "emergent"
	case "i":
		pick.Onset = "impulsive"
	case "w":
		pick.Onset = "questionable"
	}
	switch slice(tokens[8], 0, 1) {
	case "c":
		pick.Polarity = "positive"
	case "d":
		pick.Polarity = "negative"
	default:
		pick.Polarity = "undecidable"
	}
	ev.Picks = append(ev.Picks, pick)

	arrv := &model.Arrival{
		PickID: pick.PublicID,
		Phase:  &model.Phase{Code: tokens[7]},
	}

	// The line carries an epicentral distance in km, but the station
	// coordinates give the azimuth too, so both are recomputed on the
	// great circle.
	staLat, okLat := parseFloat(tokens[4])
	staLon, okLon := parseFloat(tokens[5])
	if okLat && okLon && ori.Latitude != nil && ori.Longitude != nil {
		azimuth, _, distDeg, _ := qmath.Geodesic(
			ori.Latitude.Value, ori.Longitude.Value, staLat, staLon)
		arrv.Azimuth = &azimuth
		arrv.Distance = &distDeg
	}
	ori.Arrivals = append(ori.Arrivals, arrv)
}
