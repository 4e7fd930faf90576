package ioformat

import (
	"fmt"
	"io"
	"math"

	"github.com/quakepy/qcat/pkg/catalog"
	"github.com/quakepy/qcat/pkg/qmath"
)

const atticIvyHeader = "YYYY MM DD HH IIAABB PPPPPP LLLLLLL  EE RRR FFF WWWWKKKSSSSS"

// ExportAtticIvy writes the catalog in the input format of Roger
// Musson's AtticIvy code, one line per event. Events without a
// preferred origin with coordinates or without a preferred magnitude
// are skipped. The horizontal error column takes an explicit
// horizontal uncertainty when one is recorded, or is computed from the
// latitude and longitude errors, or is zero.
func ExportAtticIvy(cat *catalog.Catalog, w io.Writer) error {
	if _, err := fmt.Fprintln(w, atticIvyHeader); err != nil {
		return writeError(err)
	}

	for _, ev := range cat.Events() {
		ori := ev.PreferredOrigin()
		if ori == nil || ori.Latitude == nil || ori.Longitude == nil ||
			ori.Time == nil || ori.Time.Value == nil {
			continue
		}
		mag := ev.PreferredMagnitude()
		if mag == nil || mag.Mag == nil {
			continue
		}

		depth := 0
		if ori.Depth != nil {
			depth = int(ori.Depth.Value)
		}

		hzErr := 0.0
		switch {
		case len(ori.Uncertainties) > 0 &&
			ori.Uncertainties[0].HorizontalUncertainty != nil:
			hzErr = *ori.Uncertainties[0].HorizontalUncertainty
		case ori.Latitude.Uncertainty != nil && ori.Longitude.Uncertainty != nil:
			latErrKM := *ori.Latitude.Uncertainty * qmath.EarthKMPerDegree
			lonErrKM := *ori.Longitude.Uncertainty *
				math.Cos(ori.Latitude.Value*math.Pi/180.0) *
				qmath.EarthKMPerDegree
			hzErr = math.Sqrt(latErrKM*latErrKM + lonErrKM*lonErrKM)
		}

		magErr := 0.0
		if mag.Mag.Uncertainty != nil {
			magErr = *mag.Mag.Uncertainty
		}

		t := ori.Time.Value.Std()
		_, err := fmt.Fprintf(w, "%4d%3d%3d%3d%3d 1 1%7.2f%8.2f  %02d %3.1f %3.1f 1.00%3d     \n",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(),
			ori.Latitude.Value, ori.Longitude.Value,
			int(hzErr), mag.Mag.Value, magErr, depth)
		if err != nil {
			return writeError(err)
		}
	}
	return nil
}
