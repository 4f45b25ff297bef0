package access

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAccounts returns the built-in account set used when the store holds
// no usable user collection. Passwords are hashed at seed time.
func DefaultAccounts() []Account {
	now := time.Now().UTC()
	return []Account{
		{
			ID:             "u-master",
			Name:           "Mariana Correia",
			Email:          "master@fnvj.com.br",
			PasswordHash:   mustHash("verde123"),
			Role:           RoleMaster,
			Active:         true,
			AllowedModules: AllModuleKeys(),
			LastLogin:      &now,
		},
		{
			ID:             "u-manager",
			Name:           "Rafael Martins",
			Email:          "rafael@fnvj.com.br",
			PasswordHash:   mustHash("gestao2025"),
			Role:           RoleManager,
			Active:         true,
			AllowedModules: []ModuleKey{ModuleDashboard, ModuleClients, ModuleSales, ModuleReports},
			LastLogin:      &now,
		},
		{
			ID:             "u-sales-1",
			Name:           "Aline Souza",
			Email:          "aline@fnvj.com.br",
			PasswordHash:   mustHash("vendas123"),
			Role:           RoleSales,
			Active:         true,
			AllowedModules: []ModuleKey{ModuleDashboard, ModuleSales, ModuleClients},
		},
		{
			ID:             "u-finance",
			Name:           "João Henrique",
			Email:          "joao@fnvj.com.br",
			PasswordHash:   mustHash("financas!"),
			Role:           RoleFinance,
			Active:         true,
			AllowedModules: []ModuleKey{ModuleDashboard, ModuleExpenses, ModuleReports},
		},
		{
			ID:             "u-analyst",
			Name:           "Beatriz Lima",
			Email:          "beatriz@fnvj.com.br",
			PasswordHash:   mustHash("analytics"),
			Role:           RoleAnalyst,
			Active:         true,
			AllowedModules: []ModuleKey{ModuleDashboard, ModuleReports},
		},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
