package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Invalidator is notified after every mutation so derived caches can drop
// stale summaries.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service implements the ledger store contract: upserts with derived totals,
// cascade deletion and optional cache invalidation. It raises no domain
// errors; every input is accepted.
type Service struct {
	repo        *Repository
	invalidator Invalidator
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
}

// NewService constructs a Service. invalidator may be nil.
func NewService(repo *Repository, invalidator Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
		now: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// UpsertClient inserts or updates a client. Inserts generate the id and the
// creation timestamp; updates preserve both and replace every other field
// wholesale.
func (s *Service) UpsertClient(ctx context.Context, in ClientInput) Client {
	client := Client{
		ID:          in.ID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Document:    in.Document,
		Origin:      in.Origin,
		BirthDate:   in.BirthDate,
		AccountLink: in.AccountLink,
		Notes:       in.Notes,
	}
	if in.ID == "" {
		client.ID = s.newID()
		client.CreatedAt = s.now()
	} else if existing, ok := s.repo.ClientByID(in.ID); ok {
		client.CreatedAt = existing.CreatedAt
	} else {
		client.CreatedAt = s.now()
	}
	s.repo.SaveClient(ctx, client)
	s.bump(ctx)
	return client
}

// UpsertSale inserts or updates a sale, recomputing the derived monetary
// fields from the current catalog price on every write.
func (s *Service) UpsertSale(ctx context.Context, in SaleInput) Sale {
	sale := Sale{
		ID:                 in.ID,
		CollaboratorID:     in.CollaboratorID,
		ClientID:           in.ClientID,
		ProductID:          in.ProductID,
		Quantity:           in.Quantity,
		DiscountPercentage: in.DiscountPercentage,
		DiscountValue:      in.DiscountValue,
		PaymentMethod:      in.PaymentMethod,
		Observation:        in.Observation,
		Date:               in.Date,
	}
	sale.Subtotal, sale.Total = ComputeTotals(in.ProductID, in.Quantity, in.DiscountPercentage, in.DiscountValue, s.repo.Products())
	if in.ID == "" {
		sale.ID = s.newID()
	}
	s.repo.SaveSale(ctx, sale)
	s.bump(ctx)
	return sale
}

// UpsertExpense inserts or updates an expense. Updates keep the original
// creation timestamp when the id is found, else a new one is stamped.
func (s *Service) UpsertExpense(ctx context.Context, in ExpenseInput) Expense {
	expense := Expense{
		ID:             in.ID,
		Date:           in.Date,
		Classification: in.Classification,
		Description:    in.Description,
		Value:          in.Value,
	}
	if in.ID == "" {
		expense.ID = s.newID()
		expense.CreatedAt = s.now()
	} else if existing, ok := s.repo.ExpenseByID(in.ID); ok {
		expense.CreatedAt = existing.CreatedAt
	} else {
		expense.CreatedAt = s.now()
	}
	s.repo.SaveExpense(ctx, expense)
	s.bump(ctx)
	return expense
}

// RemoveClient deletes the client and cascades to every sale referencing it.
func (s *Service) RemoveClient(ctx context.Context, id string) {
	s.repo.DeleteClient(ctx, id)
	s.bump(ctx)
}

// RemoveSale deletes a sale; a missing id is a silent no-op.
func (s *Service) RemoveSale(ctx context.Context, id string) {
	s.repo.DeleteSale(ctx, id)
	s.bump(ctx)
}

// RemoveExpense deletes an expense; a missing id is a silent no-op.
func (s *Service) RemoveExpense(ctx context.Context, id string) {
	s.repo.DeleteExpense(ctx, id)
	s.bump(ctx)
}

// ClientByID looks up a client; absence is not an error.
func (s *Service) ClientByID(id string) (Client, bool) {
	return s.repo.ClientByID(id)
}

// ProductByID looks up a catalog entry; absence is not an error.
func (s *Service) ProductByID(id string) (Product, bool) {
	return s.repo.ProductByID(id)
}

// Clients returns the current client collection.
func (s *Service) Clients() []Client { return s.repo.Clients() }

// Sales returns the current sale collection.
func (s *Service) Sales() []Sale { return s.repo.Sales() }

// Expenses returns the current expense collection.
func (s *Service) Expenses() []Expense { return s.repo.Expenses() }

// Products returns the read-only catalog.
func (s *Service) Products() []Product { return s.repo.Products() }

func (s *Service) bump(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Bump(ctx); err != nil {
		s.logger.Warn("bump analytics cache", slog.Any("error", err))
	}
}
