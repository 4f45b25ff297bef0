package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fnvj/console/internal/platform/kv"
)

// Keys identifies the persistence-port keys of each ledger collection.
type Keys struct {
	Clients  string
	Sales    string
	Expenses string
}

// DefaultKeys returns the key set used by the console.
func DefaultKeys() Keys {
	return Keys{
		Clients:  "fnvj:clients",
		Sales:    "fnvj:sales",
		Expenses: "fnvj:expenses",
	}
}

// Repository keeps the ledger collections in memory, mirroring each mutation
// to the persistence port. The in-memory state stays authoritative when a
// mirror write fails; the failure is only logged. One lock guards each
// collection, matching the single-writer semantics the store assumes.
type Repository struct {
	store  kv.Store
	keys   Keys
	logger *slog.Logger

	clientsMu sync.RWMutex
	clients   []Client

	salesMu sync.RWMutex
	sales   []Sale

	expensesMu sync.RWMutex
	expenses   []Expense

	products []Product
}

// NewRepository loads every collection from the store, seeding built-in
// defaults for any collection whose stored value is missing or corrupt. The
// product catalog is compiled in and never persisted.
func NewRepository(ctx context.Context, store kv.Store, keys Keys, logger *slog.Logger) *Repository {
	r := &Repository{
		store:    store,
		keys:     keys,
		logger:   logger,
		products: DefaultProducts(),
	}

	if !loadCollection(ctx, store, keys.Clients, logger, &r.clients) {
		r.clients = DefaultClients()
	}
	if !loadCollection(ctx, store, keys.Sales, logger, &r.sales) {
		r.sales = DefaultSales()
	}
	if !loadCollection(ctx, store, keys.Expenses, logger, &r.expenses) {
		r.expenses = DefaultExpenses()
	}
	return r
}

func loadCollection[T any](ctx context.Context, store kv.Store, key string, logger *slog.Logger, dest *[]T) bool {
	found, err := kv.GetJSON(ctx, store, key, dest)
	if err != nil {
		logger.Warn("load collection, falling back to defaults",
			slog.String("key", key), slog.Any("error", err))
		return false
	}
	return found
}

// Clients returns the client collection in insertion order.
func (r *Repository) Clients() []Client {
	r.clientsMu.RLock()
	defer r.clientsMu.RUnlock()
	out := make([]Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Sales returns the sale collection in insertion order.
func (r *Repository) Sales() []Sale {
	r.salesMu.RLock()
	defer r.salesMu.RUnlock()
	out := make([]Sale, len(r.sales))
	copy(out, r.sales)
	return out
}

// Expenses returns the expense collection in insertion order.
func (r *Repository) Expenses() []Expense {
	r.expensesMu.RLock()
	defer r.expensesMu.RUnlock()
	out := make([]Expense, len(r.expenses))
	copy(out, r.expenses)
	return out
}

// Products returns the read-only catalog.
func (r *Repository) Products() []Product {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// ClientByID finds a client; absence is not an error.
func (r *Repository) ClientByID(id string) (Client, bool) {
	r.clientsMu.RLock()
	defer r.clientsMu.RUnlock()
	for _, c := range r.clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}

// SaleByID finds a sale.
func (r *Repository) SaleByID(id string) (Sale, bool) {
	r.salesMu.RLock()
	defer r.salesMu.RUnlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, true
		}
	}
	return Sale{}, false
}

// ExpenseByID finds an expense.
func (r *Repository) ExpenseByID(id string) (Expense, bool) {
	r.expensesMu.RLock()
	defer r.expensesMu.RUnlock()
	for _, e := range r.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return Expense{}, false
}

// ProductByID finds a catalog entry.
func (r *Repository) ProductByID(id string) (Product, bool) {
	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// SaveClient inserts or replaces a client and mirrors the collection.
func (r *Repository) SaveClient(ctx context.Context, client Client) {
	r.clientsMu.Lock()
	r.clients = upsertByID(r.clients, client, func(c Client) string { return c.ID })
	r.clientsMu.Unlock()
	r.persistClients(ctx)
}

// SaveSale inserts or replaces a sale and mirrors the collection.
func (r *Repository) SaveSale(ctx context.Context, sale Sale) {
	r.salesMu.Lock()
	r.sales = upsertByID(r.sales, sale, func(s Sale) string { return s.ID })
	r.salesMu.Unlock()
	r.persistSales(ctx)
}

// SaveExpense inserts or replaces an expense and mirrors the collection.
func (r *Repository) SaveExpense(ctx context.Context, expense Expense) {
	r.expensesMu.Lock()
	r.expenses = upsertByID(r.expenses, expense, func(e Expense) string { return e.ID })
	r.expensesMu.Unlock()
	r.persistExpenses(ctx)
}

// DeleteClient removes a client and every sale referencing it. A missing id
// is a silent no-op.
func (r *Repository) DeleteClient(ctx context.Context, id string) {
	r.clientsMu.Lock()
	r.clients = deleteWhere(r.clients, func(c Client) bool { return c.ID == id })
	r.clientsMu.Unlock()

	r.salesMu.Lock()
	r.sales = deleteWhere(r.sales, func(s Sale) bool { return s.ClientID == id })
	r.salesMu.Unlock()

	r.persistClients(ctx)
	r.persistSales(ctx)
}

// DeleteSale removes a sale by id; absence is a silent no-op.
func (r *Repository) DeleteSale(ctx context.Context, id string) {
	r.salesMu.Lock()
	r.sales = deleteWhere(r.sales, func(s Sale) bool { return s.ID == id })
	r.salesMu.Unlock()
	r.persistSales(ctx)
}

// DeleteExpense removes an expense by id; absence is a silent no-op.
func (r *Repository) DeleteExpense(ctx context.Context, id string) {
	r.expensesMu.Lock()
	r.expenses = deleteWhere(r.expenses, func(e Expense) bool { return e.ID == id })
	r.expensesMu.Unlock()
	r.persistExpenses(ctx)
}

func (r *Repository) persistClients(ctx context.Context) {
	r.persist(ctx, r.keys.Clients, r.Clients())
}

func (r *Repository) persistSales(ctx context.Context) {
	r.persist(ctx, r.keys.Sales, r.Sales())
}

func (r *Repository) persistExpenses(ctx context.Context) {
	r.persist(ctx, r.keys.Expenses, r.Expenses())
}

func (r *Repository) persist(ctx context.Context, key string, value any) {
	if err := kv.SetJSON(ctx, r.store, key, value); err != nil {
		r.logger.Warn("persist collection", slog.String("key", key), slog.Any("error", err))
	}
}

func upsertByID[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range items {
		if id(items[i]) == target {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func deleteWhere[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
