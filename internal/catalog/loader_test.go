package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHeader = "EventID|Time|Latitude|Longitude|Depth_Km|Magnitude|MagType|EventLocationName|EventType|Author|Catalog"

func TestParseRows(t *testing.T) {
	t.Parallel()

	input := sampleHeader + "\n" +
		"12345|2016-08-24T01:36:32|42.698|13.234|8.1|6.0|Mw|Accumoli (RI)|earthquake|INGV|ISIDe\n" +
		"12346|2016-08-24T02:33:28|42.792|13.150|8.0|5.3|Mw|Norcia (PG)|earthquake|INGV|ISIDe\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.EventID != "12345" || first.Magnitude != "6.0" || first.MagType != "Mw" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.LocationName != "Accumoli (RI)" {
		t.Fatalf("unexpected location: %q", first.LocationName)
	}
}

func TestParseMissingColumnsDegradeToEmpty(t *testing.T) {
	t.Parallel()

	input := "EventID|Magnitude\n98765|3.2\n98766\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].EventID != "98765" || records[0].Magnitude != "3.2" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if records[0].LocationName != "" || records[0].Author != "" {
		t.Fatalf("expected absent columns to be empty, got %+v", records[0])
	}
	if records[1].Magnitude != "" {
		t.Fatalf("expected short row field to be empty, got %q", records[1].Magnitude)
	}
}

func TestParseUnescapesHTMLEntities(t *testing.T) {
	t.Parallel()

	input := "EventID|EventLocationName\n1|Costa Siciliana &amp; Eolie\n"

	records, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if records[0].LocationName != "Costa Siciliana & Eolie" {
		t.Fatalf("expected unescaped location, got %q", records[0].LocationName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got: %v", err)
	}
}

func TestLoadDecodesLatin1Fallback(t *testing.T) {
	t.Parallel()

	// Latin-1 a-grave (0xE0), invalid as UTF-8.
	raw := append([]byte("EventID|EventLocationName\n7|Citt"), 0xE0)
	raw = append(raw, []byte(" di Castello\n")...)

	path := filepath.Join(t.TempDir(), "latin1.txt")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].LocationName != "Città di Castello" {
		t.Fatalf("unexpected decoded location: %q", records[0].LocationName)
	}
}

func TestLoadUnitsSetsSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.txt")
	content := sampleHeader + "\n12345|2016-08-24T01:36:32|42.698|13.234|8.1|6.0|Mw|Accumoli (RI)|earthquake|INGV|ISIDe\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	units, err := LoadUnits(path)
	if err != nil {
		t.Fatalf("LoadUnits error: %v", err)
	}
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if units[0].Metadata.Source != "events.txt" {
		t.Fatalf("expected source events.txt, got %q", units[0].Metadata.Source)
	}
	if units[0].Metadata.EventID != "12345" {
		t.Fatalf("expected event_id 12345, got %q", units[0].Metadata.EventID)
	}
}
