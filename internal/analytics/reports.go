package analytics

import (
	"sort"
	"time"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/ledger"
)

// ClientFrequency describes how often a client buys and what they bring in.
type ClientFrequency struct {
	ClientID     string     `json:"clientId"`
	Name         string     `json:"name"`
	Sales        int        `json:"sales"`
	Revenue      float64    `json:"revenue"`
	LastPurchase *time.Time `json:"lastPurchase,omitempty"`
}

// CollaboratorPerformance summarizes one non-master account's sales effort.
type CollaboratorPerformance struct {
	CollaboratorID string  `json:"collaboratorId"`
	Name           string  `json:"name"`
	Revenue        float64 `json:"revenue"`
	ClosedSales    int     `json:"closedSales"`
}

// ExpenseSlice is the accumulated value of one expense classification.
type ExpenseSlice struct {
	Classification string  `json:"classification"`
	Value          float64 `json:"value"`
}

// CollaboratorSeries is a collaborator's net revenue across the 12 calendar
// months, bucketed by month component regardless of year.
type CollaboratorSeries struct {
	CollaboratorID string    `json:"collaboratorId"`
	Name           string    `json:"name"`
	Monthly        []float64 `json:"monthly"`
}

// Report is the supplemental analytical view: recurrence, revenue
// concentration and commercial effort, unfiltered.
type Report struct {
	ClientFrequency      []ClientFrequency         `json:"clientFrequency"`
	CollaboratorSummary  []CollaboratorPerformance `json:"collaboratorSummary"`
	ExpenseBreakdown     []ExpenseSlice            `json:"expenseBreakdown"`
	MonthlyCollaborators []CollaboratorSeries      `json:"monthlyCollaborators"`
}

// BuildReport derives the report from a snapshot. Pure, like Compute.
func BuildReport(snap Snapshot) Report {
	return Report{
		ClientFrequency:      clientFrequency(snap.Clients, snap.Sales),
		CollaboratorSummary:  collaboratorSummary(snap.Collaborators, snap.Sales),
		ExpenseBreakdown:     expenseBreakdown(snap.Expenses),
		MonthlyCollaborators: monthlyCollaborators(snap.Collaborators, snap.Sales),
	}
}

func clientFrequency(clients []ledger.Client, sales []ledger.Sale) []ClientFrequency {
	out := make([]ClientFrequency, 0, len(clients))
	for _, client := range clients {
		entry := ClientFrequency{ClientID: client.ID, Name: client.Name}
		for _, sale := range sales {
			if sale.ClientID != client.ID {
				continue
			}
			entry.Sales++
			entry.Revenue += sale.Total
			if entry.LastPurchase == nil || sale.Date.After(*entry.LastPurchase) {
				date := sale.Date
				entry.LastPurchase = &date
			}
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sales > out[j].Sales
	})
	return out
}

func collaboratorSummary(collaborators []access.Account, sales []ledger.Sale) []CollaboratorPerformance {
	out := make([]CollaboratorPerformance, 0, len(collaborators))
	for _, account := range collaborators {
		if account.IsMaster() {
			continue
		}
		entry := CollaboratorPerformance{CollaboratorID: account.ID, Name: account.Name}
		for _, sale := range sales {
			if sale.CollaboratorID != account.ID {
				continue
			}
			entry.Revenue += sale.Total
			entry.ClosedSales++
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

func expenseBreakdown(expenses []ledger.Expense) []ExpenseSlice {
	index := make(map[string]int)
	out := make([]ExpenseSlice, 0)
	for _, expense := range expenses {
		i, ok := index[expense.Classification]
		if !ok {
			i = len(out)
			index[expense.Classification] = i
			out = append(out, ExpenseSlice{Classification: expense.Classification})
		}
		out[i].Value += expense.Value
	}
	return out
}

func monthlyCollaborators(collaborators []access.Account, sales []ledger.Sale) []CollaboratorSeries {
	out := make([]CollaboratorSeries, 0, len(collaborators))
	for _, account := range collaborators {
		if account.IsMaster() {
			continue
		}
		series := CollaboratorSeries{
			CollaboratorID: account.ID,
			Name:           account.Name,
			Monthly:        make([]float64, 12),
		}
		for _, sale := range sales {
			if sale.CollaboratorID != account.ID {
				continue
			}
			series.Monthly[int(sale.Date.Month())-1] += sale.Total
		}
		out = append(out, series)
	}
	return out
}
