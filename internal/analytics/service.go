package analytics

import (
	"context"

	"github.com/fnvj/console/internal/access"
	"github.com/fnvj/console/internal/ledger"
)

// Service coordinates snapshot assembly with the cache layer. The underlying
// computation stays a pure function of the snapshot; the service only decides
// where the result comes from.
type Service struct {
	ledger   *ledger.Service
	accounts *access.Service
	cache    *Cache
}

// NewService wires the ledger and account sources with a Cache helper.
func NewService(ledgerSvc *ledger.Service, accounts *access.Service, cache *Cache) *Service {
	return &Service{ledger: ledgerSvc, accounts: accounts, cache: cache}
}

// Snapshot gathers the current record state.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Sales:         s.ledger.Sales(),
		Expenses:      s.ledger.Expenses(),
		Clients:       s.ledger.Clients(),
		Products:      s.ledger.Products(),
		Collaborators: s.accounts.ListAccounts(),
	}
}

// Summary resolves the dashboard summary for a filter using cache-aware
// lookups.
func (s *Service) Summary(ctx context.Context, filter Filter) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, keySummary(filter)...)
	if err != nil {
		return Summary{}, err
	}
	var summary Summary
	err = s.cache.FetchJSON(ctx, key, &summary, func(context.Context) (any, error) {
		return Compute(s.Snapshot(), filter), nil
	})
	return summary, err
}

// Report resolves the supplemental report view using cache-aware lookups.
func (s *Service) Report(ctx context.Context) (Report, error) {
	key, err := s.cache.BuildKey(ctx, keyReport()...)
	if err != nil {
		return Report{}, err
	}
	var report Report
	err = s.cache.FetchJSON(ctx, key, &report, func(context.Context) (any, error) {
		return BuildReport(s.Snapshot()), nil
	})
	return report, err
}

// Invalidator exposes the cache for ledger write-path wiring.
func (s *Service) Invalidator() *Cache {
	return s.cache
}
