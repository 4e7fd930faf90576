package schema

import (
	"database/sql"
	"strings"
	"time"

	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/qmath"
)

// ArchiveColumns lists archive_events columns in the order Row emits
// them. The list drives pgx CopyFrom during bulk loads.
func ArchiveColumns() []string {
	return []string{
		"event_id",
		"authority",
		"type",
		"type_certainty",
		"region",
		"origin_time",
		"latitude",
		"longitude",
		"depth_m",
		"horizontal_uncertainty_m",
		"magnitude",
		"magnitude_type",
		"updated_at",
	}
}

// Row returns the archive row values in ArchiveColumns order.
func (ae *ArchiveEvent) Row() []any {
	return []any{
		ae.EventID,
		ae.Authority,
		ae.Type,
		ae.TypeCertainty,
		ae.Region,
		ae.OriginTime,
		ae.Latitude,
		ae.Longitude,
		nullFloat(ae.DepthM),
		nullFloat(ae.HorizontalUncertaintyM),
		nullFloat(ae.Magnitude),
		nullString(ae.MagnitudeType),
		ae.UpdatedAt,
	}
}

func nullFloat(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func nullString(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

// FromEvent flattens an event into its archive row using the
// preferred origin and magnitude. Events without a located preferred
// origin cannot be archived and return false.
func FromEvent(ev *model.Event, now time.Time) (*ArchiveEvent, bool) {
	ori := ev.PreferredOrigin()
	if ori == nil || ori.Time == nil || ori.Time.Value == nil ||
		ori.Latitude == nil || ori.Longitude == nil {
		return nil, false
	}

	ae := &ArchiveEvent{
		EventID:       ev.PublicID,
		Authority:     authorityOf(ev.PublicID),
		Type:          ev.Type,
		TypeCertainty: ev.TypeCertainty,
		Region:        regionOf(ev, ori),
		OriginTime:    ori.Time.Value.Std(),
		Latitude:      ori.Latitude.Value,
		Longitude:     ori.Longitude.Value,
		UpdatedAt:     now.UTC(),
	}

	if ori.Depth != nil {
		ae.DepthM = sql.NullFloat64{Float64: ori.Depth.Value, Valid: true}
	}
	if hz, ok := horizontalUncertaintyM(ori); ok {
		ae.HorizontalUncertaintyM = sql.NullFloat64{Float64: hz, Valid: true}
	}
	if mag := ev.PreferredMagnitude(); mag != nil && mag.Mag != nil {
		ae.Magnitude = sql.NullFloat64{Float64: mag.Mag.Value, Valid: true}
		if mag.Type != "" {
			ae.MagnitudeType = sql.NullString{String: mag.Type, Valid: true}
		}
	}
	return ae, true
}

// authorityOf extracts the agency part of a "smi:authority/..."
// resource identifier.
func authorityOf(publicID string) string {
	rest, ok := strings.CutPrefix(publicID, "smi:")
	if !ok {
		if rest, ok = strings.CutPrefix(publicID, "quakeml:"); !ok {
			return ""
		}
	}
	agency, _, found := strings.Cut(rest, "/")
	if !found {
		return ""
	}
	return agency
}

func regionOf(ev *model.Event, ori *model.Origin) string {
	if ori.Region != "" {
		return ori.Region
	}
	for _, d := range ev.Descriptions {
		if d.Type == "region name" {
			return d.Text
		}
	}
	return ""
}

// horizontalUncertaintyM reports the horizontal location error in
// metres, preferring the explicit origin uncertainty and falling
// back to combining the latitude/longitude errors.
func horizontalUncertaintyM(ori *model.Origin) (float64, bool) {
	if len(ori.Uncertainties) > 0 &&
		ori.Uncertainties[0].HorizontalUncertainty != nil {
		return *ori.Uncertainties[0].HorizontalUncertainty, true
	}
	if ori.Latitude.Uncertainty == nil || ori.Longitude.Uncertainty == nil {
		return 0, false
	}
	km := qmath.HorizontalErrorKM(
		*ori.Latitude.Uncertainty,
		*ori.Longitude.Uncertainty,
		ori.Latitude.Value,
	)
	return km * 1000.0, true
}
