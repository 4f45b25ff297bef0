// Package export renders analytics summaries as downloadable files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fnvj/console/internal/analytics"
)

var monthNames = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// WriteSummaryCSV renders the dashboard summary as CSV, with currency values
// formatted for pt-BR readers.
func WriteSummaryCSV(w io.Writer, summary analytics.Summary) error {
	printer := message.NewPrinter(language.BrazilianPortuguese)
	money := func(v float64) string {
		return printer.Sprintf("%.2f", v)
	}

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"indicador", "valor"},
		{"receita_bruta", money(summary.GrossRevenue)},
		{"receita_liquida", money(summary.NetRevenue)},
		{"descontos", money(summary.DiscountsValue)},
		{"comissoes", money(summary.Commissions)},
		{"despesas", money(summary.ExpensesTotal)},
		{"lucro_estimado", money(summary.NetProfit)},
		{"ticket_medio", money(summary.AvgTicket)},
		{"vendas", strconv.Itoa(summary.SalesCount)},
		{},
		{"mes", "bruto", "liquido", "desconto"},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for _, bucket := range summary.ByMonth {
		row := []string{
			monthNames[bucket.Month-1],
			money(bucket.Gross),
			money(bucket.Net),
			money(bucket.Discount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
