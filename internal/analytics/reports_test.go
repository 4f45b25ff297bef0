package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/ledger"
)

func reportSnapshot() Snapshot {
	return Snapshot{
		Clients: []ledger.Client{
			{ID: "c-1", Name: "Marcelo"},
			{ID: "c-2", Name: "Ana"},
			{ID: "c-3", Name: "Pedro"},
		},
		Collaborators: []access.Account{
			{ID: "u-master", Name: "Mariana", Role: access.RoleMaster},
			{ID: "u-1", Name: "Aline", Role: access.RoleSales},
			{ID: "u-2", Name: "Rafael", Role: access.RoleManager},
		},
		Sales: []ledger.Sale{
			{ID: "s-1", ClientID: "c-1", CollaboratorID: "u-1", Total: 500, Quantity: 1, Date: day(2024, time.January, 10)},
			{ID: "s-2", ClientID: "c-1", CollaboratorID: "u-2", Total: 300, Quantity: 1, Date: day(2024, time.April, 2)},
			{ID: "s-3", ClientID: "c-2", CollaboratorID: "u-1", Total: 900, Quantity: 2, Date: day(2024, time.April, 20)},
			{ID: "s-4", ClientID: "c-1", CollaboratorID: "u-master", Total: 100, Quantity: 1, Date: day(2024, time.May, 5)},
		},
		Expenses: []ledger.Expense{
			{ID: "e-1", Classification: "Marketing", Value: 300},
			{ID: "e-2", Classification: "Operacional", Value: 150},
			{ID: "e-3", Classification: "Marketing", Value: 200},
		},
	}
}

func TestClientFrequencyRanksByPurchaseCount(t *testing.T) {
	report := BuildReport(reportSnapshot())

	require.Len(t, report.ClientFrequency, 3)
	first := report.ClientFrequency[0]
	assert.Equal(t, "c-1", first.ClientID)
	assert.Equal(t, 3, first.Sales)
	assert.InDelta(t, 900.0, first.Revenue, 1e-9)
	require.NotNil(t, first.LastPurchase)
	assert.Equal(t, day(2024, time.May, 5), *first.LastPurchase)

	// Client without sales keeps a nil last purchase.
	last := report.ClientFrequency[2]
	assert.Equal(t, "c-3", last.ClientID)
	assert.Zero(t, last.Sales)
	assert.Nil(t, last.LastPurchase)
}

func TestCollaboratorSummaryExcludesMaster(t *testing.T) {
	report := BuildReport(reportSnapshot())

	require.Len(t, report.CollaboratorSummary, 2)
	assert.Equal(t, "u-1", report.CollaboratorSummary[0].CollaboratorID)
	assert.InDelta(t, 1400.0, report.CollaboratorSummary[0].Revenue, 1e-9)
	assert.Equal(t, 2, report.CollaboratorSummary[0].ClosedSales)
	for _, entry := range report.CollaboratorSummary {
		assert.NotEqual(t, "u-master", entry.CollaboratorID)
	}
}

func TestExpenseBreakdownGroupsByClassification(t *testing.T) {
	report := BuildReport(reportSnapshot())

	require.Len(t, report.ExpenseBreakdown, 2)
	assert.Equal(t, "Marketing", report.ExpenseBreakdown[0].Classification)
	assert.InDelta(t, 500.0, report.ExpenseBreakdown[0].Value, 1e-9)
	assert.Equal(t, "Operacional", report.ExpenseBreakdown[1].Classification)
}

func TestMonthlyCollaboratorsBucketsAcrossYears(t *testing.T) {
	snap := reportSnapshot()
	snap.Sales = append(snap.Sales, ledger.Sale{
		ID: "s-5", ClientID: "c-2", CollaboratorID: "u-1", Total: 50, Quantity: 1,
		Date: day(2023, time.April, 1),
	})

	report := BuildReport(snap)
	require.Len(t, report.MonthlyCollaborators, 2)

	aline := report.MonthlyCollaborators[0]
	require.Equal(t, "u-1", aline.CollaboratorID)
	require.Len(t, aline.Monthly, 12)
	assert.InDelta(t, 500.0, aline.Monthly[0], 1e-9)
	assert.InDelta(t, 950.0, aline.Monthly[3], 1e-9)
}
