package ioformat

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
	"github.com/quakepy/qcat/pkg/qtime"
)

// zmapColumns is the classical ZMAP column count; the CSEP extension
// appends three uncertainty columns.
const (
	zmapColumns     = 10
	zmapCSEPColumns = 13
)

// ImportZMAP reads the whitespace-separated ZMAP catalog format, one
// event per line: longitude, latitude, decimal year, month, day,
// magnitude, depth (km), hour, minute, second. With
// Options.WithUncertainties the CSEP columns horizontal error (km),
// depth error (km) and magnitude error are read as well.
//
// All columns are floats, including month, day, hour and minute.
// Illegal time components (hour 24, minute 60, second 60) are
// corrected by carrying into the date.
func ImportZMAP(cat *catalog.Catalog, r io.Reader, opts *Options) error {
	opts = opts.norm()
	ids := cat.IDs()

	in := newLines(r)
	for {
		line, ok := in.Next()
		if !ok {
			break
		}
		if blank(line) {
			continue
		}

		pars := strings.Fields(line)
		if len(pars) < zmapColumns {
			skipRecord(FormatZMAP, in.N(), line, "fewer than 10 columns")
			continue
		}

		lon, okLon := parseFloat(pars[0])
		lat, okLat := parseFloat(pars[1])
		decYear, okYear := parseFloat(pars[2])
		month, okMonth := parseFloat(pars[3])
		day, okDay := parseFloat(pars[4])
		magVal, okMag := parseFloat(pars[5])
		depthKM, okDepth := parseFloat(pars[6])
		hour, okHour := parseFloat(pars[7])
		minute, okMin := parseFloat(pars[8])
		second, okSec := parseFloat(pars[9])

		if !(okLon && okLat && okYear && okMonth && okDay && okMag &&
			okDepth && okHour && okMin && okSec) {
			skipRecord(FormatZMAP, in.N(), line, "non-numeric column")
			continue
		}

		local := strconv.Itoa(in.N())

		ev := &model.Event{PublicID: ids.ID("event", local)}
		ori := &model.Origin{
			PublicID:  ids.ID("origin", local),
			Longitude: model.NewRealQuantity(lon),
			Latitude:  model.NewRealQuantity(lat),
			Depth:     model.NewRealQuantity(1000 * depthKM),
		}
		t := qtime.CorrectedDate(int(decYear), time.Month(int(month)),
			int(day), int(hour), int(minute), second)
		ori.Time = model.NewTimeQuantity(t)
		ev.Origins = append(ev.Origins, ori)

		mag := &model.Magnitude{
			PublicID: ids.ID("magnitude", local),
			Mag:      model.NewRealQuantity(magVal),
			OriginID: ori.PublicID,
		}
		ev.Magnitudes = append(ev.Magnitudes, mag)

		ev.PreferredOriginID = ori.PublicID
		ev.PreferredMagnitudeID = mag.PublicID

		if opts.WithUncertainties && len(pars) >= zmapCSEPColumns {
			if hz, ok := parseFloat(pars[10]); ok {
				v := 1000 * hz
				ori.Uncertainties = append(ori.Uncertainties,
					&model.OriginUncertainty{HorizontalUncertainty: &v})
			}
			if depthErr, ok := parseFloat(pars[11]); ok {
				v := 1000 * depthErr
				ori.Depth.Uncertainty = &v
			}
			if magErr, ok := parseFloat(pars[12]); ok {
				mag.Mag.Uncertainty = &magErr
			}
		}

		cat.AddEvent(ev)
	}
	return nil
}

// ExportZMAP writes one ZMAP line per event, from the preferred origin
// and magnitude. Events without a located preferred origin are
// skipped; a missing magnitude or depth becomes the NaN token.
func ExportZMAP(cat *catalog.Catalog, w io.Writer, opts *Options) error {
	opts = opts.norm()

	for _, ev := range cat.Events() {
		ori := ev.PreferredOrigin()
		if ori == nil || ori.Longitude == nil || ori.Latitude == nil ||
			ori.Time == nil || ori.Time.Value == nil {
			continue
		}

		mag := ev.PreferredMagnitude()
		magStr := qmath.NaNToken
		if mag != nil && mag.Mag != nil {
			magStr = floatToken(mag.Mag.Value)
		}
		depthStr := qmath.NaNToken
		if ori.Depth != nil {
			depthStr = floatToken(ori.Depth.Value / 1000.0)
		}

		t := ori.Time.Value.Std()
		sec := float64(t.Second()) + float64(t.Nanosecond())/1e9

		cols := []string{
			fmt.Sprintf("%10.6f", ori.Longitude.Value),
			fmt.Sprintf("%10.6f", ori.Latitude.Value),
			fmt.Sprintf("%18.12f", ori.Time.Value.DecimalYear()),
			floatToken(float64(t.Month())),
			floatToken(float64(t.Day())),
			magStr,
			depthStr,
			floatToken(float64(t.Hour())),
			floatToken(float64(t.Minute())),
			floatToken(sec),
		}

		if opts.WithUncertainties {
			cols = append(cols, zmapUncertaintyColumns(ori, mag,
				magStr, depthStr)...)
		}

		if _, err := io.WriteString(w,
			strings.Join(cols, "\t")+"\n"); err != nil {
			return writeError(err)
		}
	}
	return nil
}

func zmapUncertaintyColumns(
	ori *model.Origin, mag *model.Magnitude, magStr, depthStr string,
) []string {
	hzStr := qmath.NaNToken
	if len(ori.Uncertainties) > 0 &&
		ori.Uncertainties[0].HorizontalUncertainty != nil {
		hzStr = floatToken(*ori.Uncertainties[0].HorizontalUncertainty / 1000.0)
	} else if ori.Latitude.Uncertainty != nil &&
		ori.Longitude.Uncertainty != nil {
		hzStr = floatToken(qmath.HorizontalErrorKM(
			*ori.Latitude.Uncertainty, *ori.Longitude.Uncertainty,
			ori.Latitude.Value))
	}

	depthErrStr := qmath.NaNToken
	if depthStr != qmath.NaNToken && ori.Depth.Uncertainty != nil {
		depthErrStr = floatToken(*ori.Depth.Uncertainty / 1000.0)
	}

	magErrStr := qmath.NaNToken
	if magStr != qmath.NaNToken && mag.Mag.Uncertainty != nil {
		magErrStr = floatToken(*mag.Mag.Uncertainty)
	}

	return []string{hzStr, depthErrStr, magErrStr}
}

// floatToken renders a float the way the legacy ZMAP files carry
// integral values: always with a decimal point.
func floatToken(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
