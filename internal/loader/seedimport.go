package loader

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/takrawm/famengine/internal/engine"
	"github.com/takrawm/famengine/internal/fam"
	"github.com/takrawm/famengine/internal/logging"
)

// csvHeader is the expected column order for seed-value CSV files.
var csvHeader = []string{"period", "account", "value"}

// ParseCSVSeedRows reads (period, account, value) rows from a CSV
// file. The first row must be the header {period,account,value}.
// Values are parsed as plain numbers with strconv.ParseFloat; lang is
// accepted but locale-specific thousands or decimal separators are not
// recognized.
func ParseCSVSeedRows(r io.Reader, lang language.Tag) ([]engine.SeedValue, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file has no rows")
	}
	if err := validateHeader(records[0]); err != nil {
		return nil, err
	}

	p := message.NewPrinter(lang)
	rows := make([]engine.SeedValue, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+2, len(rec))
		}
		v, err := parseLocaleFloat(p, rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing value %q: %w", i+2, rec[2], err)
		}
		rows = append(rows, engine.SeedValue{
			Period:  fam.PeriodId(rec[0]),
			Account: fam.AccountId(rec[1]),
			Value:   v,
		})
	}
	return rows, nil
}

func validateHeader(header []string) error {
	if len(header) != len(csvHeader) {
		return fmt.Errorf("expected header %v, got %v", csvHeader, header)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return fmt.Errorf("expected header %v, got %v", csvHeader, header)
		}
	}
	return nil
}

// parseLocaleFloat parses s as a float64 with strconv.ParseFloat. The
// printer is not consulted, so strings with thousands separators or a
// decimal separator other than '.' are rejected.
func parseLocaleFloat(_ *message.Printer, s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// jsonSeedRow is the on-disk shape of one row in a JSON seed file.
type jsonSeedRow struct {
	Period  string  `json:"period"`
	Account string  `json:"account"`
	Value   float64 `json:"value"`
}

// ParseJSONSeedRows reads a JSON array of {period,account,value}
// objects.
func ParseJSONSeedRows(r io.Reader) ([]engine.SeedValue, error) {
	var raw []jsonSeedRow
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding JSON seed rows: %w", err)
	}

	rows := make([]engine.SeedValue, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, engine.SeedValue{
			Period:  fam.PeriodId(r.Period),
			Account: fam.AccountId(r.Account),
			Value:   r.Value,
		})
	}
	return rows, nil
}

// ImportSeedValues drives Engine.LoadInputData over rows in
// ChunkSize-sized chunks, reporting progress via onProgress after each
// chunk. Import stops at the first chunk that fails to load (an
// unknown account or period), matching LoadInputData's all-or-nothing
// per-call contract at chunk granularity.
//
// Engine is not safe for concurrent calls, so chunks are always
// processed sequentially.
func ImportSeedValues(ctx context.Context, e *engine.Engine, rows []engine.SeedValue, chunkSize int, onProgress ProgressCallback) error {
	proc, err := NewProcessor[engine.SeedValue](chunkSize)
	if err != nil {
		return err
	}
	if onProgress != nil {
		proc = proc.WithProgressCallback(onProgress)
	}

	log := logging.FromContext(ctx).With().Str("component", "loader").Logger()
	log.Info().Int("rows", len(rows)).Int("chunk_size", chunkSize).Msg("starting seed import")

	err = proc.Process(ctx, rows, func(ctx context.Context, chunk []engine.SeedValue, chunkIndex int) error {
		if loadErr := e.LoadInputData(chunk); loadErr != nil {
			log.Error().Int("chunk", chunkIndex).Err(loadErr).Msg("seed import chunk failed")
			return loadErr
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("rows", len(rows)).Msg("seed import complete")
	return nil
}
