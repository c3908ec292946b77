package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// BioRow is one row of the authoritative biography table.
type BioRow struct {
	ScholarIndex string
	Name         string
	Grade        string
	Parents      string
	Teachers     string
	Students     string
	BirthPlace   string
	BirthDate    string
	DeathPlace   string
	DeathDate    string
}

// RawRecordRow is one row of the raw chain dataset: a record key plus the
// bracketed narrator-name list and optional record text.
type RawRecordRow struct {
	Collection string
	Number     int
	Chain      string
	Text       string
}

// SecondaryRow is one row of the independent chain encoding, joinable to
// primary records by (source, number).
type SecondaryRow struct {
	Source     string
	Number     string
	ChainIndex string
}

type headerIndex map[string]int

func (h headerIndex) get(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func readHeader(r *csv.Reader) (headerIndex, error) {
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(headerIndex, len(header))
	for i, col := range header {
		h[strings.TrimSpace(col)] = i
	}
	return h, nil
}

func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return f, r, nil
}

// LoadBiographies reads the biography CSV. Rows missing a name are
// skipped.
func LoadBiographies(path string) ([]BioRow, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var rows []BioRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read biography row: %w", err)
		}
		row := BioRow{
			ScholarIndex: h.get(rec, "scholar_indx"),
			Name:         h.get(rec, "name"),
			Grade:        h.get(rec, "grade"),
			Parents:      h.get(rec, "parents"),
			Teachers:     h.get(rec, "teachers"),
			Students:     h.get(rec, "students"),
			BirthPlace:   h.get(rec, "birth_place"),
			BirthDate:    h.get(rec, "birth_date_hijri"),
			DeathPlace:   h.get(rec, "death_place"),
			DeathDate:    h.get(rec, "death_date_hijri"),
		}
		if row.Name == "" {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadRawRecords reads the raw chain dataset, keeping only rows from
// known collections. Rows with unparseable numbers are skipped.
func LoadRawRecords(path string) ([]RawRecordRow, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	var rows []RawRecordRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}

		key, ok := CollectionKey(h.get(rec, "Book"))
		if !ok {
			continue
		}

		num, ok := parseRecordNumber(h.get(rec, "Num_hadith"))
		if !ok {
			continue
		}

		rows = append(rows, RawRecordRow{
			Collection: key,
			Number:     num,
			Chain:      h.get(rec, "Sanad"),
			Text:       h.get(rec, "Matn"),
		})
	}

	return rows, nil
}

// LoadSecondaryChains reads the independent chain encoding keyed by
// (source, number).
func LoadSecondaryChains(path string) (map[string]SecondaryRow, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]SecondaryRow)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read secondary row: %w", err)
		}
		row := SecondaryRow{
			Source:     h.get(rec, "source"),
			Number:     h.get(rec, "hadith_no"),
			ChainIndex: h.get(rec, "chain_indx"),
		}
		if row.Source == "" || row.Number == "" {
			continue
		}
		rows[SecondaryKey(row.Source, row.Number)] = row
	}

	return rows, nil
}

// SecondaryKey builds the composite join key for a secondary row.
func SecondaryKey(source, number string) string {
	return source + "#" + number
}

// SplitChainIndex parses the comma-separated scholar indices of a
// secondary chain encoding.
func SplitChainIndex(chainIndex string) []string {
	var out []string
	for _, part := range strings.Split(chainIndex, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRecordNumber tolerates the float-formatted numbers that appear in
// the source table ("1240.0").
func parseRecordNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		return int(fl), true
	}
	return 0, false
}
