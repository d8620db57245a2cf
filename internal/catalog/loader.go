// internal/catalog/loader.go
// Package catalog loads INGV-style pipe-delimited earthquake catalog files
// and renders each event as a retrievable text unit.
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/danielaScattarella/rag-ai/internal/rag"
)

// EventRecord is one catalog row. All fields stay raw strings; malformed or
// missing values degrade to the empty string and are never rejected here.
type EventRecord struct {
	EventID      string
	Time         string
	Latitude     string
	Longitude    string
	DepthKm      string
	Magnitude    string
	MagType      string
	LocationName string
	EventType    string
	Author       string
	Catalog      string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a pipe-delimited catalog file and returns one EventRecord per
// row. A missing file surfaces the underlying os.ErrNotExist.
func Load(path string) ([]EventRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}
	records, err := Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}
	return records, nil
}

// LoadUnits loads a catalog file and normalizes every record into a text
// unit, stamping the source file name into the metadata.
func LoadUnits(path string) ([]rag.TextUnit, error) {
	records, err := Load(path)
	if err != nil {
		return nil, err
	}
	source := filepath.Base(path)
	units := make([]rag.TextUnit, len(records))
	for i, record := range records {
		units[i] = Normalize(record)
		units[i].Metadata.Source = source
	}
	return units, nil
}

// decodeText tries UTF-8 first (stripping a BOM if present), then falls
// back to Windows-1252 and ISO-8859-1, the encodings seen in the wild for
// exported catalog files.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		return string(decoded), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("unsupported text encoding: %w", err)
	}
	return string(decoded), nil
}

// Parse reads pipe-delimited rows with a header line. Columns missing from
// the header or from an individual row degrade to empty strings.
func Parse(r io.Reader) ([]EventRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var records []EventRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return html.UnescapeString(strings.TrimSpace(row[idx]))
		}
		records = append(records, EventRecord{
			EventID:      field("EventID"),
			Time:         field("Time"),
			Latitude:     field("Latitude"),
			Longitude:    field("Longitude"),
			DepthKm:      field("Depth_Km"),
			Magnitude:    field("Magnitude"),
			MagType:      field("MagType"),
			LocationName: field("EventLocationName"),
			EventType:    field("EventType"),
			Author:       field("Author"),
			Catalog:      field("Catalog"),
		})
	}
	return records, nil
}
