package access

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fnvj/console/internal/shared"
)

// Service wraps account management and access-check business rules.
type Service struct {
	repo     *Repository
	sessions *shared.SessionManager
	now      func() time.Time
}

// NewService constructs a Service.
func NewService(repo *Repository, sessions *shared.SessionManager) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           Role
	AllowedModules []ModuleKey
}

// UpdateInput carries a partial account update. Nil fields are left as-is.
type UpdateInput struct {
	Name           *string
	Role           *Role
	Password       *string
	AllowedModules []ModuleKey
}

// Login authenticates the credentials, stamps the account's last login and
// binds it as the current session actor.
func (s *Service) Login(ctx context.Context, email, password string) (Account, error) {
	account, ok := s.repo.ByEmail(strings.TrimSpace(email))
	if !ok {
		return Account{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Account{}, shared.ErrInvalidCredentials
	}
	if !account.Active {
		return Account{}, shared.ErrInactiveAccount
	}

	stamp := s.now()
	account.LastLogin = &stamp
	s.repo.Save(ctx, account)
	s.sessions.Bind(ctx, account.ID)
	return account, nil
}

// Logout clears the current session actor. It never fails.
func (s *Service) Logout(ctx context.Context) {
	s.sessions.Clear(ctx)
}

// Register creates a new active account. The email must be unique ignoring
// case; a master role forces the full module set.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Account, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, exists := s.repo.ByEmail(email); exists {
		return Account{}, shared.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Active:       true,
	}
	if in.Role == RoleMaster {
		account.AllowedModules = AllModuleKeys()
	} else {
		account.AllowedModules = dedupeModules(in.AllowedModules)
	}

	s.repo.Save(ctx, account)
	return account, nil
}

// Update applies a partial update. Attempts to demote a master account are
// silently ignored while the remaining fields still apply, and a master's
// module set stays forced to the full catalog.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Account, error) {
	account, ok := s.repo.ByID(id)
	if !ok {
		return Account{}, shared.ErrNotFound
	}

	if in.Name != nil {
		account.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, err
		}
		account.PasswordHash = string(hash)
	}
	if in.Role != nil && CanTransition(account.Role, *in.Role) {
		account.Role = *in.Role
	}

	switch {
	case account.IsMaster():
		account.AllowedModules = AllModuleKeys()
	case in.AllowedModules != nil:
		account.AllowedModules = dedupeModules(in.AllowedModules)
	}

	s.repo.Save(ctx, account)
	return account, nil
}

// ToggleActive flips the active flag. Master accounts are never deactivated;
// the call is a silent no-op for them.
func (s *Service) ToggleActive(ctx context.Context, id string) (Account, error) {
	account, ok := s.repo.ByID(id)
	if !ok {
		return Account{}, shared.ErrNotFound
	}
	if account.IsMaster() {
		return account, nil
	}
	account.Active = !account.Active
	s.repo.Save(ctx, account)
	return account, nil
}

// HasAccess reports whether the current actor may open the given module.
// Master sees everything; without an actor the answer is always false.
func (s *Service) HasAccess(ctx context.Context, key ModuleKey) bool {
	account, ok := s.Current(ctx)
	if !ok {
		return false
	}
	return account.HasModule(key)
}

// Current resolves the acting account, preferring an id threaded through the
// context over the persisted session binding.
func (s *Service) Current(ctx context.Context) (Account, bool) {
	id := shared.ActorIDFromContext(ctx)
	if id == "" {
		id = s.sessions.CurrentID()
	}
	if id == "" {
		return Account{}, false
	}
	return s.repo.ByID(id)
}

// ListAccounts returns every account in insertion order.
func (s *Service) ListAccounts() []Account {
	return s.repo.List()
}

// AccountByID finds a single account.
func (s *Service) AccountByID(id string) (Account, bool) {
	return s.repo.ByID(id)
}

// Modules exposes the static module catalog.
func (s *Service) Modules() []ModuleDefinition {
	return Modules()
}
