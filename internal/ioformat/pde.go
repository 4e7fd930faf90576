package ioformat

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qtime"
)

const (
	pdeMinimumLineLength = 42
	pdeMagnitudeSource   = "NEIS"
)

// pdeMagnitudeSlot describes one of the four magnitude columns of a
// PDE compressed line. The first two slots carry fixed types (mb, Ms)
// and an observation count; the last two carry type and source columns
// instead.
type pdeMagnitudeSlot struct {
	from, to         int
	obsFrom, obsTo   int
	typeFrom, typeTo int
	srcFrom, srcTo   int
	fixedType        bool
	magType          string
}

var pdeMagnitudeSlots = []pdeMagnitudeSlot{
	{from: 54, to: 57, obsFrom: 57, obsTo: 59, fixedType: true, magType: "mb"},
	{from: 59, to: 62, obsFrom: 63, obsTo: 65, fixedType: true, magType: "Ms"},
	{from: 65, to: 69, typeFrom: 69, typeTo: 71, srcFrom: 71, srcTo: 76},
	{from: 76, to: 80, typeFrom: 80, typeTo: 82, srcFrom: 82, srcTo: 87},
}

// ImportPDE reads the USGS/NEIC PDE catalog in "compressed" format,
// one event per line. Focal time down to the hour, latitude and
// longitude are required; minutes and seconds default to zero and
// depth may be missing entirely.
func ImportPDE(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs().WithAuthority(opts.authority("PDE"))

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		if len(strings.TrimRight(line, " \t\r\n")) < pdeMinimumLineLength {
			continue
		}
		pdeRecord(cat, ids, line, in.N())
	}
	return nil
}

func pdeRecord(cat *catalog.Catalog, ids *catalog.IDGen, line string, lineNo int) {
	year, okY := intAt(line, 6, 12)
	month, okMo := intAt(line, 12, 14)
	day, okD := intAt(line, 14, 16)
	hour, okH := intAt(line, 16, 18)
	lat, okLat := floatAt(line, 27, 34)
	lon, okLon := floatAt(line, 34, 42)
	if !(okY && okMo && okD && okH && okLat && okLon) {
		skipRecord(FormatPDE, lineNo, line, "malformed hypocenter block")
		return
	}

	minute, ok := intAt(line, 18, 20)
	if !ok {
		minute = 0
	}
	second, ok := floatAt(line, 20, 25)
	if !ok {
		second = 0.0
	}

	// The year plus the raw datetime digits identify the event.
	local := fmt.Sprintf("%d%s", year, field(line, 12, 25))

	ev := &model.Event{PublicID: ids.ID("event", local)}
	ori := &model.Origin{
		PublicID: ids.ID("origin", local),
		Time: model.NewTimeQuantity(qtime.Date(
			year, time.Month(month), day, hour, minute, second)),
		Latitude:  model.NewRealQuantity(lat),
		Longitude: model.NewRealQuantity(lon),
	}
	ev.Origins = append(ev.Origins, ori)
	ev.PreferredOriginID = ori.PublicID
	cat.AddEvent(ev)

	if depthKM, ok := floatAt(line, 42, 45); ok {
		ori.Depth = model.NewRealQuantity(1000 * depthKM)
	}
	if locsource := field(line, 25, 27); locsource != "" {
		originCreationInfo(ori).AgencyID = locsource
	}
	if ctrl := field(line, 47, 48); ctrl != "" {
		ori.Comments = append(ori.Comments, &model.Comment{
			Text: "PDE:depth_control_designator=" + ctrl,
		})
		switch strings.ToLower(ctrl) {
		case "a":
			ori.DepthType = "operator assigned"
		case "d":
			ori.DepthType = "constrained by depth phases"
		case "n", "g", "s":
			ori.DepthType = "other"
		}
	}
	if cnt, ok := intAt(line, 48, 50); ok {
		originQuality(ori).DepthPhaseCount = &cnt
	}
	if stdDev, ok := floatAt(line, 50, 54); ok {
		originQuality(ori).StandardError = &stdDev
	}
	if region := field(line, 87, 90); region != "" {
		ev.Descriptions = append(ev.Descriptions, &model.EventDescription{
			Text: region,
			Type: "Flinn-Engdahl region",
		})
	}

	for n, slot := range pdeMagnitudeSlots {
		magVal, ok := floatAt(line, slot.from, slot.to)
		if !ok {
			continue
		}
		mag := &model.Magnitude{
			PublicID: ids.Sub("magnitude", local, n+1),
			Mag:      model.NewRealQuantity(magVal),
			OriginID: ori.PublicID,
		}
		ev.Magnitudes = append(ev.Magnitudes, mag)

		if slot.fixedType {
			mag.Type = slot.magType
			magCreationInfo(mag).AgencyID = pdeMagnitudeSource
			if cnt, ok := intAt(line, slot.obsFrom, slot.obsTo); ok {
				mag.StationCount = &cnt
			}
		} else {
			if magType := field(line, slot.typeFrom, slot.typeTo); magType != "" {
				mag.Type = magType
			}
			if src := field(line, slot.srcFrom, slot.srcTo); src != "" {
				magCreationInfo(mag).AgencyID = src
			}
		}
	}
	if len(ev.Magnitudes) > 0 {
		ev.PreferredMagnitudeID = ev.Magnitudes[0].PublicID
	}
}
