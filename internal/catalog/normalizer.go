package catalog

import (
	"fmt"

	"github.com/danielaScattarella/rag-ai/internal/rag"
)

// Normalize renders one event record as a fixed-order, fixed-label
// multi-line text unit. Missing fields render as an empty string after the
// label; no line is ever omitted. The record's event identifier is carried
// in the unit metadata.
func Normalize(record EventRecord) rag.TextUnit {
	content := fmt.Sprintf(
		"Event ID: %s\n"+
			"Date/Time: %s\n"+
			"Latitude: %s\n"+
			"Longitude: %s\n"+
			"Depth (km): %s\n"+
			"Magnitude: %s (%s)\n"+
			"Location: %s\n"+
			"Event Type: %s\n"+
			"Author: %s\n"+
			"Catalog: %s\n",
		record.EventID,
		record.Time,
		record.Latitude,
		record.Longitude,
		record.DepthKm,
		record.Magnitude,
		record.MagType,
		record.LocationName,
		record.EventType,
		record.Author,
		record.Catalog,
	)
	return rag.TextUnit{
		Content:  content,
		Metadata: rag.Metadata{EventID: record.EventID},
	}
}
