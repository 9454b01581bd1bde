package analytics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// ErrUnsupportedRateFile is returned for rate files that are not yaml, xlsx or csv
var ErrUnsupportedRateFile = errors.New("unsupported rate table file")

type rateFile struct {
	Rates map[string]Rate `yaml:"rates"`
}

// LoadRateTable reads crop rate overrides from path and merges them over the
// built-in table. The format is picked by extension: .yaml/.yml, .xlsx or
// .csv. Spreadsheet and CSV files need the columns crop, yield_per_hectare,
// unit and price_per_unit in any order.
func LoadRateTable(path string) (RateTable, error) {
	var (
		overrides map[string]Rate
		err       error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		overrides, err = loadRatesYAML(path)
	case ".xlsx":
		overrides, err = loadRatesXLSX(path)
	case ".csv":
		overrides, err = loadRatesCSV(path)
	default:
		return RateTable{}, fmt.Errorf("%w: %s", ErrUnsupportedRateFile, path)
	}
	if err != nil {
		return RateTable{}, fmt.Errorf("failed to load rate table %s: %w", path, err)
	}
	return DefaultRateTable().With(overrides), nil
}

func loadRatesYAML(path string) (map[string]Rate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f rateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	for name, r := range f.Rates {
		if err := validateRate(name, r); err != nil {
			return nil, err
		}
	}
	return f.Rates, nil
}

func loadRatesXLSX(path string) (map[string]Rate, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}
	return parseRateRows(rows[0], rows[1:])
}

func loadRatesCSV(path string) (map[string]Rate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return parseRateRows(head, rows)
}

// parseRateRows maps a header row plus data rows onto rates. Headers are
// matched loosely: case, spaces, dashes, underscores and a BOM are ignored.
func parseRateRows(head []string, rows [][]string) (map[string]Rate, error) {
	norm := func(s string) string {
		s = strings.TrimPrefix(strings.TrimSpace(s), "\uFEFF")
		s = strings.ToLower(s)
		for _, r := range []string{" ", "-", "_"} {
			s = strings.ReplaceAll(s, r, "")
		}
		return s
	}
	cols := map[string]int{}
	for i, h := range head {
		cols[norm(h)] = i
	}
	find := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := cols[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := find("crop", "crop_name", "name")
	cYield := find("yield_per_hectare", "yield", "yield_ha")
	cUnit := find("unit", "yield_unit")
	cPrice := find("price_per_unit", "price")
	if cCrop == -1 || cYield == -1 || cPrice == -1 {
		return nil, fmt.Errorf("rate table missing required columns, found headers: %v", head)
	}

	out := make(map[string]Rate, len(rows))
	for i, rec := range rows {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		name := get(cCrop)
		if name == "" {
			continue
		}
		yield, err := strconv.ParseFloat(get(cYield), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid yield %q", i+2, get(cYield))
		}
		price, err := strconv.ParseFloat(get(cPrice), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", i+2, get(cPrice))
		}
		unit := get(cUnit)
		if unit == "" {
			unit = "tons"
		}
		r := Rate{YieldPerHectare: yield, Unit: unit, PricePerUnit: price}
		if err := validateRate(name, r); err != nil {
			return nil, err
		}
		out[strings.ToLower(name)] = r
	}
	return out, nil
}

func validateRate(name string, r Rate) error {
	for _, v := range []float64{r.YieldPerHectare, r.PricePerUnit} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("rate for %q must be a finite number", name)
		}
	}
	if r.YieldPerHectare < 0 || r.PricePerUnit < 0 {
		return fmt.Errorf("rate for %q must not be negative", name)
	}
	return nil
}
