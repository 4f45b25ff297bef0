package analytics

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/ledger"
	"github.com/fnvj/console/internal/platform/kv"
	"github.com/fnvj/console/internal/shared"
)

func newStack(t *testing.T) (*Service, *ledger.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kv.NewMemory()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewCache(client, time.Minute)

	sessions := shared.NewSessionManager(ctx, store, "fnvj:session", logger)
	accessRepo := access.NewRepository(ctx, store, "fnvj:users", logger)
	accessSvc := access.NewService(accessRepo, sessions)

	ledgerRepo := ledger.NewRepository(ctx, store, ledger.DefaultKeys(), logger)
	ledgerSvc := ledger.NewService(ledgerRepo, cache, logger)

	return NewService(ledgerSvc, accessSvc, cache), ledgerSvc
}

func TestSummaryReflectsLedgerMutations(t *testing.T) {
	svc, ledgerSvc := newStack(t)
	ctx := context.Background()

	before, err := svc.Summary(ctx, Filter{})
	require.NoError(t, err)

	ledgerSvc.UpsertSale(ctx, ledger.SaleInput{
		CollaboratorID: "u-sales-1",
		ClientID:       "c-1",
		ProductID:      "p-1",
		Quantity:       1,
		Date:           time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	after, err := svc.Summary(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, before.SalesCount+1, after.SalesCount)
	assert.InDelta(t, before.GrossRevenue+1290.0, after.GrossRevenue, 1e-9)
}

func TestSummaryServedFromCacheUntilBump(t *testing.T) {
	svc, ledgerSvc := newStack(t)
	ctx := context.Background()

	first, err := svc.Summary(ctx, Filter{Year: "2024"})
	require.NoError(t, err)

	// A second identical query hits the cache and matches exactly.
	second, err := svc.Summary(ctx, Filter{Year: "2024"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	ledgerSvc.RemoveSale(ctx, "s-1")

	third, err := svc.Summary(ctx, Filter{Year: "2024"})
	require.NoError(t, err)
	assert.Equal(t, first.SalesCount-1, third.SalesCount)
}

func TestReportExcludesMasterCollaborators(t *testing.T) {
	svc, _ := newStack(t)

	report, err := svc.Report(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.CollaboratorSummary)
	for _, entry := range report.CollaboratorSummary {
		assert.NotEqual(t, "u-master", entry.CollaboratorID)
	}
	assert.Len(t, report.ClientFrequency, 5)
}
