package access

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/fnvj/console/internal/platform/kv"
)

// Repository keeps the account collection in memory and mirrors every write
// to the persistence port. The in-memory state stays authoritative when the
// mirror fails.
type Repository struct {
	store  kv.Store
	key    string
	logger *slog.Logger

	mu       sync.RWMutex
	accounts []Account
}

// NewRepository loads the account collection from the store, seeding the
// built-in defaults when the stored value is missing or corrupt.
func NewRepository(ctx context.Context, store kv.Store, key string, logger *slog.Logger) *Repository {
	r := &Repository{store: store, key: key, logger: logger}
	var accounts []Account
	found, err := kv.GetJSON(ctx, store, key, &accounts)
	if err != nil {
		logger.Warn("load accounts, falling back to defaults", slog.Any("error", err))
	}
	if err != nil || !found || len(accounts) == 0 {
		accounts = DefaultAccounts()
	}
	r.accounts = accounts
	return r
}

// List returns all accounts in insertion order.
func (r *Repository) List() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// ByID finds an account by id.
func (r *Repository) ByID(id string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// ByEmail finds an account by case-insensitive email.
func (r *Repository) ByEmail(email string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return Account{}, false
}

// Save inserts the account or replaces the stored copy with the same id,
// then mirrors the collection to the store.
func (r *Repository) Save(ctx context.Context, account Account) {
	r.mu.Lock()
	replaced := false
	for i, a := range r.accounts {
		if a.ID == account.ID {
			r.accounts[i] = account
			replaced = true
			break
		}
	}
	if !replaced {
		r.accounts = append(r.accounts, account)
	}
	r.mu.Unlock()
	r.persist(ctx)
}

func (r *Repository) persist(ctx context.Context) {
	r.mu.RLock()
	snapshot := make([]Account, len(r.accounts))
	copy(snapshot, r.accounts)
	r.mu.RUnlock()
	if err := kv.SetJSON(ctx, r.store, r.key, snapshot); err != nil {
		r.logger.Warn("persist accounts", slog.Any("error", err))
	}
}
