package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

// PreviewSize is the number of transactions echoed back per group.
const PreviewSize = 5

// ErrConfiguration marks a request that cannot run as configured,
// such as a live import of a group with no account assigned.
var ErrConfiguration = errors.New("configuration error")

// Request is a single import run. It is never shared between runs.
type Request struct {
	Rows           []Row
	Mapping        MappingConfig
	GroupByColumn  string
	AccountMapping map[string]string
	DryRun         bool
	Ledger         ledger.Config
}

type GroupResult struct {
	Group            string
	AccountID        string
	TransactionCount int
	InvalidCount     int
	Preview          []Transaction
}

type Result struct {
	DryRun            bool
	Groups            []GroupResult
	TotalTransactions int
	TotalInvalid      int
}

type Service struct {
	connector ledger.Connector
}

func NewService(connector ledger.Connector) *Service {
	return &Service{connector: connector}
}

// Import groups the rows, builds a transaction batch per group and, unless
// DryRun is set, posts the valid transactions of each group to its account.
//
// Groups are posted one at a time in first-seen order. The first failure aborts
// the run and only the error is returned, even if earlier groups were already
// posted. Nothing is rolled back.
func (s *Service) Import(ctx context.Context, req Request) (*Result, error) {
	groups := GroupRows(req.Rows, req.GroupByColumn)

	result := &Result{
		DryRun: req.DryRun,
		Groups: make([]GroupResult, 0, len(groups)),
	}

	var client ledger.Client

	for _, g := range groups {
		txs := make([]Transaction, 0, len(g.Rows))
		for _, row := range g.Rows {
			txs = append(txs, Normalize(row, req.Mapping))
		}

		accountID := req.AccountMapping[g.Key]

		gr := GroupResult{
			Group:            g.Key,
			AccountID:        accountID,
			TransactionCount: len(txs),
			InvalidCount:     countInvalid(txs),
			Preview:          txs[:min(PreviewSize, len(txs))],
		}

		result.Groups = append(result.Groups, gr)
		result.TotalTransactions += gr.TransactionCount
		result.TotalInvalid += gr.InvalidCount

		if req.DryRun {
			continue
		}

		if accountID == "" {
			return nil, fmt.Errorf("%w: no account mapped for group %q", ErrConfiguration, g.Key)
		}

		if client == nil {
			var err error

			client, err = s.connect(req.Ledger)
			if err != nil {
				return nil, err
			}
		}

		valid := validLedgerTransactions(txs)

		if err := client.ImportTransactions(ctx, accountID, valid); err != nil {
			slog.Error("group import failed", "group", g.Key, "account", accountID, "error", err)
			return nil, fmt.Errorf("import group %q: %w", g.Key, err)
		}

		slog.Info("group imported", "group", g.Key, "account", accountID, "count", len(valid))
	}

	if req.DryRun {
		slog.Debug("dry run finished",
			"groups", len(result.Groups),
			"transactions", result.TotalTransactions,
			"invalid", result.TotalInvalid,
		)
	}

	return result, nil
}

func (s *Service) connect(cfg ledger.Config) (ledger.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	client, err := s.connector.Connect(cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrIncompleteConfig) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		return nil, fmt.Errorf("connect ledger: %w", err)
	}

	return client, nil
}

// validLedgerTransactions keeps the valid transactions. The result is never nil
// so an all-invalid group still produces an (empty) import call.
func validLedgerTransactions(txs []Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))

	for _, t := range txs {
		if !IsValid(t) {
			continue
		}

		out = append(out, ledger.Transaction{
			Date:   t.Date,
			Amount: t.Amount.Decimal,
			Payee:  t.Payee,
			Notes:  t.Notes,
		})
	}

	return out
}
