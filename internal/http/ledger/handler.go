package ledger

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

// CredentialHeader carries the ledger credential so it stays out of URLs and access logs.
const CredentialHeader = "X-Ledger-Credential"

type Handler struct {
	connector ledger.Connector
	defaults  config.Ledger
}

func NewHandler(connector ledger.Connector, defaults config.Ledger) *Handler {
	return &Handler{connector: connector, defaults: defaults}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/accounts", h.listAccounts)
	r.Get("/budgets", h.listBudgets)
}

func (h *Handler) client(r *http.Request) (ledger.Client, error) {
	cfg := h.defaults.Resolve(ledger.Config{
		ServerURL:  r.URL.Query().Get("serverUrl"),
		Credential: r.Header.Get(CredentialHeader),
		BudgetID:   r.URL.Query().Get("budgetId"),
	})

	return h.connector.Connect(cfg)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	client, err := h.client(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	accounts, err := client.ListAccounts(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	render.JSON(w, http.StatusOK, accounts)
}

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	client, err := h.client(r)
	if err != nil {
		writeErr(w, err)
		return
	}

	budgets, err := client.ListBudgets(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	render.JSON(w, http.StatusOK, budgets)
}

func writeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrIncompleteConfig) {
		render.Error(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	render.Err(w, err)
}
