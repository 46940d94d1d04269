package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnavailable is returned when the ledger cannot be reached or refuses the credential.
	ErrUnavailable = errors.New("ledger unavailable")
	// ErrIncompleteConfig is returned when a connection field needed for a call is missing.
	ErrIncompleteConfig = errors.New("incomplete ledger configuration")
)

// RejectedError is returned when the ledger understood the request but refused it.
type RejectedError struct {
	Detail string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("ledger rejected request: %s", e.Detail)
}

// Config holds the connection fields for one ledger budget.
type Config struct {
	ServerURL  string
	Credential string
	BudgetID   string
}

// Validate checks the fields needed to post transactions.
func (c Config) Validate() error {
	var missing []string

	if c.ServerURL == "" {
		missing = append(missing, "server url")
	}

	if c.BudgetID == "" {
		missing = append(missing, "budget id")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, strings.Join(missing, ", "))
	}

	return nil
}

type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Budget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction is the shape posted to the ledger.
type Transaction struct {
	Date   string
	Amount decimal.Decimal
	Payee  string
	Notes  string
}

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=ledger
type Client interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	ListBudgets(ctx context.Context) ([]Budget, error)
	ImportTransactions(ctx context.Context, accountID string, txs []Transaction) error
}

type Connector interface {
	Connect(cfg Config) (Client, error)
}
