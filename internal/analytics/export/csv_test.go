package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnvj/console/internal/analytics"
)

func TestWriteSummaryCSVFormatsCurrencyPtBR(t *testing.T) {
	summary := analytics.Summary{
		GrossRevenue: 1234.56,
		NetRevenue:   1000,
		SalesCount:   2,
	}
	summary.ByMonth = make([]analytics.MonthBucket, 12)
	for i := range summary.ByMonth {
		summary.ByMonth[i].Month = i + 1
	}
	summary.ByMonth[0].Gross = 1234.56

	var sb strings.Builder
	require.NoError(t, WriteSummaryCSV(&sb, summary))

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "indicador,valor"))
	// pt-BR uses dot as thousands separator and comma for decimals, which
	// forces CSV quoting.
	assert.Contains(t, out, `"1.234,56"`)
	assert.Contains(t, out, "vendas,2")
	assert.Contains(t, out, "Jan,")
	// 11 header/indicator rows plus one row per month.
	assert.Equal(t, 23, strings.Count(out, "\n"))
}
