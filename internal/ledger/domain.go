// Package ledger is the record store of the console: clients, sales and
// expenses, plus the read-only product catalog. Monetary fields on sales are
// derived from the catalog on every write and never trusted from callers.
package ledger

import "time"

// Client is a registered customer.
type Client struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Document    string     `json:"document"`
	Origin      string     `json:"origin"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	AccountLink string     `json:"accountLink,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Product is a read-only catalog entry.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Sale records a product sold by a collaborator to a client. Subtotal and
// Total are derived: subtotal = price × quantity, total = subtotal −
// subtotal×pct/100 − flat discount. Discounts compose and totals are not
// clamped, so a discount larger than the subtotal yields a negative total.
type Sale struct {
	ID                 string    `json:"id"`
	CollaboratorID     string    `json:"collaboratorId"`
	ClientID           string    `json:"clientId"`
	ProductID          string    `json:"productId"`
	Quantity           int       `json:"quantity"`
	DiscountPercentage float64   `json:"discountPercentage"`
	DiscountValue      float64   `json:"discountValue"`
	PaymentMethod      string    `json:"paymentMethod"`
	Observation        string    `json:"observation,omitempty"`
	Date               time.Time `json:"date"`
	Subtotal           float64   `json:"subtotal"`
	Total              float64   `json:"total"`
}

// Expense is a financial outflow.
type Expense struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Classification string    `json:"classification"`
	Description    string    `json:"description"`
	Value          float64   `json:"value"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ClientInput carries the caller-editable fields of a client. An empty ID
// means insert.
type ClientInput struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Document    string
	Origin      string
	BirthDate   *time.Time
	AccountLink string
	Notes       string
}

// SaleInput carries the caller-editable fields of a sale. Subtotal and Total
// are intentionally absent.
type SaleInput struct {
	ID                 string
	CollaboratorID     string
	ClientID           string
	ProductID          string
	Quantity           int
	DiscountPercentage float64
	DiscountValue      float64
	PaymentMethod      string
	Observation        string
	Date               time.Time
}

// ExpenseInput carries the caller-editable fields of an expense.
type ExpenseInput struct {
	ID             string
	Date           time.Time
	Classification string
	Description    string
	Value          float64
}

// PaymentMethods is the suggested set offered by the sales form. Free-form
// values are still accepted.
var PaymentMethods = []string{
	"Cartão de Crédito",
	"Pix",
	"Boleto",
	"Transferência",
	"Dinheiro",
}

// ExpenseClassifications is the suggested set for expense categorization.
var ExpenseClassifications = []string{
	"Marketing",
	"Operacional",
	"Comissão",
	"Eventos",
	"Impostos",
	"Outros",
}
