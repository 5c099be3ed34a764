package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWriteCSV(t *testing.T) {
	table := &Table{
		Name:    "customer_first_invoice",
		Columns: []string{"Customer Name", "Credit Limit", "Amount of First Invoice"},
		Rows: [][]string{
			{"Aldo", "5000.00", "250.00"},
			{"Ciro", "8000.00", ""},
		},
	}

	var buf strings.Builder
	require.NoError(t, table.WriteCSV(&buf))

	want := "Customer Name,Credit Limit,Amount of First Invoice\n" +
		"Aldo,5000.00,250.00\n" +
		"Ciro,8000.00,\n"
	assert.Equal(t, want, buf.String())
}

func TestTableWriteCSV_RaggedRowRejected(t *testing.T) {
	table := &Table{
		Name:    "city_sales",
		Columns: []string{"City", "Total Sales"},
		Rows:    [][]string{{"Utrecht"}},
	}

	var buf strings.Builder
	err := table.WriteCSV(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 1 cells, want 2")
}
