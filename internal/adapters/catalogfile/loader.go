// Package catalogfile reads card catalogs from CSV and YAML files.
package catalogfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/deckforge/internal/ports/primary"
)

// Load reads a catalog file, choosing the format from its extension:
// .csv, or .yaml/.yml.
func Load(path string) ([]*primary.Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cards, err := ReadCSV(fp)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return cards, nil
	case ".yaml", ".yml":
		cards, err := ReadYAML(fp)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return cards, nil
	}
	return nil, fmt.Errorf("unsupported catalog format %q (want .csv, .yaml or .yml)", filepath.Ext(path))
}

// ReadCSV parses a catalog with a header row. Columns are matched by name,
// ignoring case: id, name and type are required; text and image_url are
// optional. Blank rows are skipped.
func ReadCSV(r io.Reader) ([]*primary.Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv has no header")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "name", "type"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := []*primary.Card{}
	for _, row := range rows[1:] {
		c := &primary.Card{
			ID:       get(row, "id"),
			Name:     get(row, "name"),
			Type:     get(row, "type"),
			Text:     get(row, "text"),
			ImageURL: get(row, "image_url"),
		}
		if c.ID == "" && c.Name == "" && c.Type == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// catalogDoc is the YAML catalog layout:
//
//	cards:
//	  - id: KDM-001
//	    name: Guardián del Umbral
//	    type: Protector
type catalogDoc struct {
	Cards []*primary.Card `yaml:"cards"`
}

// ReadYAML parses a YAML catalog document.
func ReadYAML(r io.Reader) ([]*primary.Card, error) {
	var doc catalogDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []*primary.Card{}, nil
		}
		return nil, err
	}
	return doc.Cards, nil
}
