package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/spendwise/internal/expense"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
)

func TestParse_English(t *testing.T) {
	csv := `date,category,amount,description
2025-04-02,Groceries,42.50,weekly shop
2025-04-03,Transport,"1,234.56",
`

	rows, err := importer.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Groceries", rows[0].Params.Category)
	assert.Equal(t, "2025-04-02", rows[0].Params.Date)
	assert.Equal(t, "weekly shop", rows[0].Params.Description)
	require.NotNil(t, rows[0].Params.Amount)
	assert.InDelta(t, 42.5, *rows[0].Params.Amount, 1e-9)

	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "", rows[1].Params.Description)
	require.NotNil(t, rows[1].Params.Amount)
	assert.InDelta(t, 1234.56, *rows[1].Params.Amount, 1e-9)
}

func TestParse_PortugueseWithPreamble(t *testing.T) {
	csv := `Extracto de despesas;2025
Nome;JOHN DOE

Data;Categoria;Montante;Descrição
02-04-2025;Supermercado;1.234,56;Compras
15-04-2025;Farmácia;-12,30;
;;;
`

	rows, err := importer.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-04-02", rows[0].Params.Date)
	assert.Equal(t, "Supermercado", rows[0].Params.Category)
	assert.Equal(t, "Compras", rows[0].Params.Description)
	assert.InDelta(t, 1234.56, *rows[0].Params.Amount, 1e-9)

	assert.Equal(t, "2025-04-15", rows[1].Params.Date)
	assert.Equal(t, "Farmácia", rows[1].Params.Category)
	assert.InDelta(t, -12.3, *rows[1].Params.Amount, 1e-9)
}

func TestParse_DifferentColumnOrder(t *testing.T) {
	csv := `Amount;Notes;Category;Date
10,00;ignored;Books;30-01-2026
`

	rows, err := importer.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Books", rows[0].Params.Category)
	assert.Equal(t, "2026-01-30", rows[0].Params.Date)
	assert.Equal(t, "", rows[0].Params.Description)
	assert.InDelta(t, 10.0, *rows[0].Params.Amount, 1e-9)
}

func TestParse_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data;Categoria;Montante;Descrição\n30-01-2026;Café;-10,00;CAFÉ CENTRAL\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	rows, err := importer.Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "CAFÉ CENTRAL", rows[0].Params.Description)
	assert.Equal(t, "Café", rows[0].Params.Category)
}

func TestParse_MissingCellsLeftForValidation(t *testing.T) {
	csv := "date,category,amount\n2025-04-02,Groceries,\n,Books,3\n"

	rows, err := importer.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Nil(t, rows[0].Params.Amount)
	assert.Equal(t, "", rows[1].Params.Date)
}

func TestParse_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantMsg string
	}

	tests := []testCase{
		{name: "Empty File", csv: "", wantMsg: "no header"},
		{name: "Unknown Header", csv: "when,what,howmuch\n2025-04-02,A,1\n", wantMsg: "no header"},
		{name: "Bad Date", csv: "date,category,amount\n2025-04-02,A,1\n04/2025,B,2\n", wantMsg: "row 3"},
		{name: "Bad Amount", csv: "date,category,amount\n2025-04-02,A,ten\n", wantMsg: "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, expense.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
