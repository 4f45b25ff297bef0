// Package access owns user accounts, credentials and module permissions for
// the console. Every module view is gated by an account's allowed-module set,
// with the master role holding an irrevocable grant on the full catalog.
package access

import "time"

// ModuleKey identifies a functional area of the console.
type ModuleKey string

// Fixed module catalog keys.
const (
	ModuleDashboard ModuleKey = "dashboard"
	ModuleClients   ModuleKey = "clients"
	ModuleSales     ModuleKey = "sales"
	ModuleExpenses  ModuleKey = "expenses"
	ModuleReports   ModuleKey = "reports"
	ModuleAccess    ModuleKey = "access"
)

// ModuleDefinition is a static catalog entry describing a module view.
type ModuleDefinition struct {
	Key         ModuleKey `json:"key"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
}

var moduleCatalog = []ModuleDefinition{
	{Key: ModuleDashboard, Label: "Painel Analítico", Description: "Resumo de vendas, despesas e performance.", Path: "/"},
	{Key: ModuleClients, Label: "Clientes", Description: "Cadastro, edição e histórico dos clientes.", Path: "/clientes"},
	{Key: ModuleSales, Label: "Vendas", Description: "Registro de vendas e acompanhamento comercial.", Path: "/vendas"},
	{Key: ModuleExpenses, Label: "Despesas", Description: "Controle das saídas financeiras.", Path: "/despesas"},
	{Key: ModuleReports, Label: "Visão Analítica", Description: "Insights adicionais e rankings.", Path: "/relatorios"},
	{Key: ModuleAccess, Label: "Controle de Acesso", Description: "Gerenciamento de usuários e permissões.", Path: "/acessos"},
}

// Modules returns the immutable module catalog.
func Modules() []ModuleDefinition {
	out := make([]ModuleDefinition, len(moduleCatalog))
	copy(out, moduleCatalog)
	return out
}

// AllModuleKeys returns every module key in catalog order.
func AllModuleKeys() []ModuleKey {
	keys := make([]ModuleKey, len(moduleCatalog))
	for i, m := range moduleCatalog {
		keys[i] = m.Key
	}
	return keys
}

// ValidModuleKey reports whether key belongs to the catalog.
func ValidModuleKey(key ModuleKey) bool {
	for _, m := range moduleCatalog {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Role is the closed set of account roles.
type Role string

const (
	RoleMaster  Role = "master"
	RoleManager Role = "manager"
	RoleSales   Role = "sales"
	RoleFinance Role = "finance"
	RoleAnalyst Role = "analyst"
)

var roles = []Role{RoleMaster, RoleManager, RoleSales, RoleFinance, RoleAnalyst}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// CanTransition encodes the role state machine: master is absorbing, every
// other role may move freely between non-master and master states.
func CanTransition(from, to Role) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == RoleMaster {
		return to == RoleMaster
	}
	return true
}

// Account is a console user.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"passwordHash"`
	Role           Role        `json:"role"`
	Active         bool        `json:"active"`
	AllowedModules []ModuleKey `json:"allowedModules"`
	LastLogin      *time.Time  `json:"lastLogin,omitempty"`
}

// IsMaster reports whether the account holds the master role.
func (a Account) IsMaster() bool {
	return a.Role == RoleMaster
}

// HasModule reports whether key is in the account's allowed set. Master
// accounts implicitly hold every module.
func (a Account) HasModule(key ModuleKey) bool {
	if a.IsMaster() {
		return true
	}
	for _, k := range a.AllowedModules {
		if k == key {
			return true
		}
	}
	return false
}

func dedupeModules(keys []ModuleKey) []ModuleKey {
	seen := make(map[ModuleKey]struct{}, len(keys))
	out := make([]ModuleKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
