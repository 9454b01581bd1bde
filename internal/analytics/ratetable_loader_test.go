package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRateTable_YAML(t *testing.T) {
	path := writeFile(t, "rates.yaml", `rates:
  rice:
    yield_per_hectare: 4.2
    unit: tons
    price_per_unit: 23000
  default:
    yield_per_hectare: 1.5
    unit: tons
    price_per_unit: 18000
`)

	table, err := LoadRateTable(path)
	require.NoError(t, err)

	rice, ok := table.Lookup("Rice")
	assert.True(t, ok)
	assert.Equal(t, 4.2, rice.YieldPerHectare)
	assert.Equal(t, 23000.0, rice.PricePerUnit)

	fallback, ok := table.Lookup("unlisted")
	assert.False(t, ok)
	assert.Equal(t, 1.5, fallback.YieldPerHectare)

	wheat, ok := table.Lookup("wheat")
	assert.True(t, ok, "built-in entries survive overrides")
	assert.Equal(t, 3.2, wheat.YieldPerHectare)
}

func TestLoadRateTable_CSV(t *testing.T) {
	path := writeFile(t, "rates.csv", "\uFEFFCrop Name,Price,Yield Per Hectare,Unit\nMillet,28000,1.1,\nrice,26000,3.6,tons\n,1,1,\n")

	table, err := LoadRateTable(path)
	require.NoError(t, err)

	millet, ok := table.Lookup("millet")
	assert.True(t, ok)
	assert.Equal(t, Rate{YieldPerHectare: 1.1, Unit: "tons", PricePerUnit: 28000}, millet)

	rice, _ := table.Lookup("rice")
	assert.Equal(t, 26000.0, rice.PricePerUnit)
}

func TestLoadRateTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"crop", "yield_per_hectare", "unit", "price_per_unit"},
		{"cardamom", 0.25, "tons", 1600000},
		{"vanilla", 0.1, "kg", 3000},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := LoadRateTable(path)
	require.NoError(t, err)

	vanilla, ok := table.Lookup("vanilla")
	assert.True(t, ok)
	assert.Equal(t, Rate{YieldPerHectare: 0.1, Unit: "kg", PricePerUnit: 3000}, vanilla)

	cardamom, _ := table.Lookup("cardamom")
	assert.Equal(t, 0.25, cardamom.YieldPerHectare)
}

func TestLoadRateTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{name: "unsupported extension", file: "rates.json", content: "{}", target: ErrUnsupportedRateFile},
		{name: "missing columns", file: "rates.csv", content: "crop,unit\nrice,tons\n"},
		{name: "bad number", file: "rates.csv", content: "crop,yield,price\nrice,lots,100\n"},
		{name: "negative price", file: "rates.csv", content: "crop,yield,price\nrice,1,-100\n"},
		{name: "negative yaml yield", file: "rates.yml", content: "rates:\n  rice:\n    yield_per_hectare: -1\n"},
		{name: "infinite price", file: "rates.csv", content: "crop,yield,price\nrice,1,Inf\n"},
		{name: "nan yield", file: "rates.csv", content: "crop,yield,price\nrice,NaN,100\n"},
		{name: "infinite yaml price", file: "rates.yaml", content: "rates:\n  rice:\n    price_per_unit: .inf\n"},
		{name: "malformed yaml", file: "rates.yaml", content: "rates: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRateTable(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}

	_, err := LoadRateTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
