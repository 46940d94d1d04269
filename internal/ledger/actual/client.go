// Package actual talks to an Actual Budget server through its HTTP API.
package actual

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

const apiKeyHeader = "x-api-key"

// Connector builds Clients that share one http.Client.
type Connector struct {
	client *http.Client
}

// NewConnector returns a Connector whose calls are bounded by timeout.
func NewConnector(timeout time.Duration) *Connector {
	return &Connector{client: &http.Client{Timeout: timeout}}
}

func (c *Connector) Connect(cfg ledger.Config) (ledger.Client, error) {
	return New(c.client, cfg)
}

// Client is a ledger.Client bound to one budget.
type Client struct {
	http     *http.Client
	baseURL  string
	apiKey   string
	budgetID string
}

// New returns a Client for cfg. Only the server url is required here;
// budget-scoped calls fail with ledger.ErrIncompleteConfig when BudgetID is empty.
func New(httpClient *http.Client, cfg ledger.Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%w: missing server url", ledger.ErrIncompleteConfig)
	}

	if _, err := url.ParseRequestURI(cfg.ServerURL); err != nil {
		return nil, fmt.Errorf("%w: invalid server url: %w", ledger.ErrIncompleteConfig, err)
	}

	return &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:   cfg.Credential,
		budgetID: cfg.BudgetID,
	}, nil
}

type accountDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

type budgetDTO struct {
	CloudFileID string `json:"cloudFileId"`
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
}

type transactionDTO struct {
	Account       string `json:"account"`
	Date          string `json:"date"`
	Amount        int64  `json:"amount"`
	PayeeName     string `json:"payee_name,omitempty"`
	ImportedPayee string `json:"imported_payee,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type importRequest struct {
	Transactions []transactionDTO `json:"transactions"`
}

type importResponse struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListAccounts returns the open accounts of the budget.
func (c *Client) ListAccounts(ctx context.Context) ([]ledger.Account, error) {
	path, err := c.budgetPath("accounts")
	if err != nil {
		return nil, err
	}

	var resp envelope[[]accountDTO]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	accounts := make([]ledger.Account, 0, len(resp.Data))

	for _, a := range resp.Data {
		if a.Closed {
			continue
		}

		accounts = append(accounts, ledger.Account{ID: a.ID, Name: a.Name})
	}

	return accounts, nil
}

// ListBudgets returns the budgets known to the server. The ID is the sync id
// expected as BudgetID.
func (c *Client) ListBudgets(ctx context.Context) ([]ledger.Budget, error) {
	var resp envelope[[]budgetDTO]
	if err := c.do(ctx, http.MethodGet, "/v1/budgets", nil, &resp); err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	budgets := make([]ledger.Budget, 0, len(resp.Data))

	for _, b := range resp.Data {
		id := b.GroupID
		if id == "" {
			id = b.CloudFileID
		}

		budgets = append(budgets, ledger.Budget{ID: id, Name: b.Name})
	}

	return budgets, nil
}

// ImportTransactions posts txs to the account. Amounts are sent in cents.
func (c *Client) ImportTransactions(ctx context.Context, accountID string, txs []ledger.Transaction) error {
	path, err := c.budgetPath("accounts", accountID, "transactions", "import")
	if err != nil {
		return err
	}

	body := importRequest{Transactions: make([]transactionDTO, 0, len(txs))}

	for _, t := range txs {
		body.Transactions = append(body.Transactions, transactionDTO{
			Account:       accountID,
			Date:          isoDate(t.Date),
			Amount:        t.Amount.Shift(2).Round(0).IntPart(),
			PayeeName:     t.Payee,
			ImportedPayee: t.Payee,
			Notes:         t.Notes,
		})
	}

	var resp envelope[importResponse]
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return fmt.Errorf("importing transactions: %w", err)
	}

	if len(resp.Data.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Data.Errors))
		for _, e := range resp.Data.Errors {
			msgs = append(msgs, e.Message)
		}

		return &ledger.RejectedError{Detail: strings.Join(msgs, "; ")}
	}

	return nil
}

// dateLayouts are the day-first and compact layouts common in bank exports.
var dateLayouts = []string{
	time.DateOnly,
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"20060102",
}

// isoDate rewrites a date in one of dateLayouts as YYYY-MM-DD.
// Anything else is sent unchanged and left to the server to reject.
func isoDate(s string) string {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(time.DateOnly)
		}
	}

	return s
}

func (c *Client) budgetPath(parts ...string) (string, error) {
	if c.budgetID == "" {
		return "", fmt.Errorf("%w: missing budget id", ledger.ErrIncompleteConfig)
	}

	escaped := make([]string, 0, len(parts)+3)
	escaped = append(escaped, "", "v1", "budgets", url.PathEscape(c.budgetID))

	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}

	return strings.Join(escaped, "/"), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ledger.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: decoding response: %w", ledger.ErrUnavailable, err)
	}

	return nil
}

// checkStatus maps HTTP failures onto the ledger error kinds: auth and server
// failures make the ledger unavailable, other client errors are rejections.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := readDetail(resp.Body)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: authentication failed (%d): %s", ledger.ErrUnavailable, resp.StatusCode, detail)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server error (%d): %s", ledger.ErrUnavailable, resp.StatusCode, detail)
	}

	return &ledger.RejectedError{Detail: detail}
}

func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var e errorResponse
	if json.Unmarshal(raw, &e) == nil {
		if e.Error != "" {
			return e.Error
		}

		if e.Message != "" {
			return e.Message
		}
	}

	return strings.TrimSpace(string(raw))
}
