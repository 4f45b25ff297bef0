// Package analytics derives financial summaries from ledger snapshots. The
// computation itself is a pure function over the records it is handed; a
// Redis-backed cache fronts the dashboard queries.
package analytics

import (
	"sort"
	"strconv"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/ledger"
)

// CommissionRate is the fixed rate applied to net revenue to estimate the
// commission payout.
const CommissionRate = 0.06

// FilterAll selects every value of a filter dimension.
const FilterAll = "all"

// Placeholder labels used when a referenced entity is missing from the
// current catalogs. Lookups never fail the computation.
const (
	placeholderClient       = "Cliente"
	placeholderProduct      = "Produto"
	placeholderCollaborator = "Colaborador desconhecido"
)

// Filter scopes a dashboard summary. Empty values behave like FilterAll.
type Filter struct {
	Year           string
	CollaboratorID string
	ClientID       string
	ProductID      string
}

func (f Filter) year() (int, bool) {
	if f.Year == "" || f.Year == FilterAll {
		return 0, false
	}
	year, err := strconv.Atoi(f.Year)
	if err != nil {
		return 0, false
	}
	return year, true
}

func matchDimension(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// Snapshot is the record state a summary is computed from.
type Snapshot struct {
	Sales         []ledger.Sale
	Expenses      []ledger.Expense
	Clients       []ledger.Client
	Products      []ledger.Product
	Collaborators []access.Account
}

// MonthBucket accumulates revenue for one calendar month. Sales are bucketed
// by the month component of their date across every year that passed the
// year filter.
type MonthBucket struct {
	Month    int     `json:"month"`
	Gross    float64 `json:"gross"`
	Net      float64 `json:"net"`
	Discount float64 `json:"discount"`
}

// ClientTotal is the accumulated net revenue of one client.
type ClientTotal struct {
	ClientID string  `json:"clientId"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
}

// ProductTotal is the accumulated sold quantity of one product.
type ProductTotal struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// CollaboratorTotal is the accumulated revenue and quantity of one
// collaborator.
type CollaboratorTotal struct {
	CollaboratorID string  `json:"collaboratorId"`
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	Quantity       int     `json:"quantity"`
}

// Summary holds the portfolio-level figures plus the bucketed breakdowns of
// the dashboard.
type Summary struct {
	GrossRevenue   float64 `json:"grossRevenue"`
	NetRevenue     float64 `json:"netRevenue"`
	DiscountsValue float64 `json:"discountsValue"`
	Commissions    float64 `json:"commissions"`
	ExpensesTotal  float64 `json:"expensesTotal"`
	NetProfit      float64 `json:"netProfit"`
	AvgTicket      float64 `json:"avgTicket"`
	SalesCount     int     `json:"salesCount"`

	ByMonth        []MonthBucket       `json:"byMonth"`
	ByClient       []ClientTotal       `json:"byClient"`
	ByProduct      []ProductTotal      `json:"byProduct"`
	ByCollaborator []CollaboratorTotal `json:"byCollaborator"`

	TopClients       []ClientTotal       `json:"topClients"`
	TopCollaborators []CollaboratorTotal `json:"topCollaborators"`
}

// Compute derives the summary for a snapshot under the given filter. It is
// pure, mutates nothing and raises no errors.
func Compute(snap Snapshot, filter Filter) Summary {
	year, filterYear := filter.year()

	sales := make([]ledger.Sale, 0, len(snap.Sales))
	for _, sale := range snap.Sales {
		if filterYear && sale.Date.Year() != year {
			continue
		}
		if !matchDimension(filter.CollaboratorID, sale.CollaboratorID) {
			continue
		}
		if !matchDimension(filter.ClientID, sale.ClientID) {
			continue
		}
		if !matchDimension(filter.ProductID, sale.ProductID) {
			continue
		}
		sales = append(sales, sale)
	}

	// Expenses only honor the year filter.
	var expensesTotal float64
	for _, expense := range snap.Expenses {
		if filterYear && expense.Date.Year() != year {
			continue
		}
		expensesTotal += expense.Value
	}

	var summary Summary
	for _, sale := range sales {
		summary.GrossRevenue += sale.Subtotal
		summary.NetRevenue += sale.Total
	}
	summary.DiscountsValue = summary.GrossRevenue - summary.NetRevenue
	summary.Commissions = summary.NetRevenue * CommissionRate
	summary.ExpensesTotal = expensesTotal
	summary.NetProfit = summary.NetRevenue - summary.Commissions - expensesTotal
	summary.SalesCount = len(sales)
	if len(sales) > 0 {
		summary.AvgTicket = summary.NetRevenue / float64(len(sales))
	}

	summary.ByMonth = monthlySeries(sales)
	summary.ByClient = clientTotals(sales, snap.Clients)
	summary.ByProduct = productTotals(sales, snap.Products)
	summary.ByCollaborator = collaboratorTotals(sales, snap.Collaborators)
	summary.TopClients = topClients(summary.ByClient, 5)
	summary.TopCollaborators = topCollaborators(summary.ByCollaborator, 5)
	return summary
}

func monthlySeries(sales []ledger.Sale) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Month = i + 1
	}
	for _, sale := range sales {
		bucket := &buckets[int(sale.Date.Month())-1]
		bucket.Gross += sale.Subtotal
		bucket.Net += sale.Total
	}
	for i := range buckets {
		buckets[i].Discount = buckets[i].Gross - buckets[i].Net
	}
	return buckets
}

func clientTotals(sales []ledger.Sale, clients []ledger.Client) []ClientTotal {
	index := make(map[string]int)
	totals := make([]ClientTotal, 0)
	for _, sale := range sales {
		i, ok := index[sale.ClientID]
		if !ok {
			i = len(totals)
			index[sale.ClientID] = i
			totals = append(totals, ClientTotal{
				ClientID: sale.ClientID,
				Name:     clientName(clients, sale.ClientID),
			})
		}
		totals[i].Value += sale.Total
	}
	return totals
}

func productTotals(sales []ledger.Sale, products []ledger.Product) []ProductTotal {
	index := make(map[string]int)
	totals := make([]ProductTotal, 0)
	for _, sale := range sales {
		i, ok := index[sale.ProductID]
		if !ok {
			i = len(totals)
			index[sale.ProductID] = i
			totals = append(totals, ProductTotal{
				ProductID: sale.ProductID,
				Name:      productName(products, sale.ProductID),
			})
		}
		totals[i].Quantity += sale.Quantity
	}
	return totals
}

func collaboratorTotals(sales []ledger.Sale, collaborators []access.Account) []CollaboratorTotal {
	index := make(map[string]int)
	totals := make([]CollaboratorTotal, 0)
	for _, sale := range sales {
		i, ok := index[sale.CollaboratorID]
		if !ok {
			i = len(totals)
			index[sale.CollaboratorID] = i
			totals = append(totals, CollaboratorTotal{
				CollaboratorID: sale.CollaboratorID,
				Name:           collaboratorName(collaborators, sale.CollaboratorID),
			})
		}
		totals[i].Revenue += sale.Total
		totals[i].Quantity += sale.Quantity
	}
	return totals
}

func topClients(totals []ClientTotal, n int) []ClientTotal {
	ranked := make([]ClientTotal, len(totals))
	copy(ranked, totals)
	// Stable sort keeps first-occurrence order on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func topCollaborators(totals []CollaboratorTotal, n int) []CollaboratorTotal {
	ranked := make([]CollaboratorTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func clientName(clients []ledger.Client, id string) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return placeholderClient
}

func productName(products []ledger.Product, id string) string {
	for _, p := range products {
		if p.ID == id {
			return p.Name
		}
	}
	return placeholderProduct
}

func collaboratorName(collaborators []access.Account, id string) string {
	for _, a := range collaborators {
		if a.ID == id {
			return a.Name
		}
	}
	return placeholderCollaborator
}
