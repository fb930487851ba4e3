package catalog

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func priceListHeader() []interface{} {
	return []interface{}{
		colReference, colDescription, colFinish, colUse, colWarranty,
		colCaldasExcl, colCaldasIncl, colChagualoExcl, colChagualoIncl,
	}
}

func TestLoadDropsRowsWithoutReferenceOrDescription(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		priceListHeader(),
		{"ALF-001", "Alfarda tratada 12x300", "Inmunizada", "Estructural", "15 años", 42378, 50430, 43500, 51765},
		{"", "Tabla burra 3m", "Natural", "Obra", "5 años", 15000, 17850, 15500, 18445},
		{"POS-010", "", "Inmunizada", "Cerca", "10 años", 28000, 33320, 29000, 34510},
		{"POS-020", "Poste inmunizado 2.2m", "Inmunizada", "Cerca", "10 años", 31000, 36890, 32000, 38080},
	})

	store := NewStore()
	res, err := store.Load(buf)
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 2, store.Len())
	assert.Contains(t, res.Columns, colReference)
}

func TestLoadNormalizesPriceColumns(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		priceListHeader(),
		{"ALF-001", "Alfarda tratada", "", "", "", "$ 42,378", "no disponible", "", 51765.5},
	})

	store := NewStore()
	_, err := store.Load(buf)
	require.NoError(t, err)

	p, err := store.GetByReference("ALF-001", LocationCaldas, false)
	require.NoError(t, err)
	assert.Equal(t, 42378.0, p.Prices.CaldasExclTax)
	assert.Equal(t, 0.0, p.Prices.CaldasInclTax)
	assert.Equal(t, 0.0, p.Prices.ChagualoExclTax)
	assert.Equal(t, 51765.5, p.Prices.ChagualoInclTax)
}

func TestLoadMissingRequiredColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Codigo", colDescription},
		{"X", "Algo"},
	})

	store := NewStore()
	_, err := store.Load(buf)
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "Referencia")
}

func TestLoadFailureRetainsPreviousCatalog(t *testing.T) {
	store := NewStore()

	buf := buildWorkbook(t, [][]interface{}{
		priceListHeader(),
		{"ALF-001", "Alfarda tratada", "", "", "", 42378, 50430, 43500, 51765},
	})
	_, err := store.Load(buf)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = store.Load(strings.NewReader("this is not a workbook"))
	require.Error(t, err)

	assert.Equal(t, 1, store.Len(), "previous catalog must stay authoritative")
	_, err = store.GetByReference("ALF-001", LocationCaldas, true)
	assert.NoError(t, err)
}

func TestSearchBeforeLoadReturnsErrEmpty(t *testing.T) {
	store := NewStore()
	_, err := store.Search("mesa", LocationCaldas, true, 10)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = store.Stats()
	assert.ErrorIs(t, err, ErrEmpty)
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	rows := [][]interface{}{priceListHeader()}
	for i := 1; i <= 5; i++ {
		rows = append(rows, []interface{}{
			fmt.Sprintf("MES-%03d", i), fmt.Sprintf("Mesa de madera ref %d", i),
			"Inmunizada", "Hogar", "5 años",
			10000 * i, 11900 * i, 10500 * i, 12495 * i,
		})
	}
	rows = append(rows, []interface{}{
		"SIL-001", "Silla de comedor", "Natural", "Hogar", "3 años", 80000, 95200, 82000, 97580,
	})

	store := NewStore()
	_, err := store.Load(buildWorkbook(t, rows))
	require.NoError(t, err)
	return store
}

func TestSearchRespectsLimitAndRowOrder(t *testing.T) {
	store := loadedStore(t)

	results, err := store.Search("mesa", LocationCaldas, true, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "MES-001", results[0].Reference)
	assert.Equal(t, "MES-002", results[1].Reference)
	assert.Equal(t, 11900.0, results[0].PriceNumeric, "must carry the caldas tax-inclusive price")
	assert.Equal(t, "$ 11.900", results[0].Price)
	assert.Equal(t, LocationCaldas, results[0].Location)
	assert.True(t, results[0].TaxIncluded)
}

func TestSearchIsCaseInsensitiveAndIdempotent(t *testing.T) {
	store := loadedStore(t)

	first, err := store.Search("MESA", LocationChagualo, false, 10)
	require.NoError(t, err)
	second, err := store.Search("MESA", LocationChagualo, false, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 5)
	assert.Equal(t, 10500.0, first[0].PriceNumeric)
}

func TestSearchNoMatchIsNotAnError(t *testing.T) {
	store := loadedStore(t)

	results, err := store.Search("escritorio", LocationCaldas, true, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetByReferenceMiss(t *testing.T) {
	store := loadedStore(t)
	_, err := store.GetByReference("NOPE-404", LocationCaldas, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	store := loadedStore(t)

	stats, err := store.Stats()
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalProducts)
	assert.ElementsMatch(t, []string{"Inmunizada", "Natural"}, stats.Finishes)
	assert.Equal(t, []string{"Hogar"}, stats.Uses)

	caldas := stats.Prices[LocationCaldas]
	assert.Equal(t, 10000.0, caldas.ExclTax.Min)
	assert.Equal(t, 80000.0, caldas.ExclTax.Max)
	assert.Greater(t, caldas.InclTax.Average, 0.0)
}
