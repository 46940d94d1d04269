package importcsv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/preset"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/profile"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/tabular"
)

const sampleSize = 5

type Handler struct {
	importSvc      *importer.Service
	presetSvc      *preset.Service
	ledgerDefaults config.Ledger
	maxUpload      int64
}

// NewHandler builds the import handler. presetSvc may be nil when presets are disabled.
func NewHandler(importSvc *importer.Service, presetSvc *preset.Service, ledgerDefaults config.Ledger, maxUpload int64) *Handler {
	return &Handler{
		importSvc:      importSvc,
		presetSvc:      presetSvc,
		ledgerDefaults: ledgerDefaults,
		maxUpload:      maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importRows)
	r.Post("/upload", h.importUpload)
	r.Post("/columns", h.columns)
}

type ledgerConfigDTO struct {
	ServerURL  string `json:"serverUrl"`
	Credential string `json:"credential"`
	BudgetID   string `json:"budgetId"`
}

type importRequest struct {
	Rows           []importer.Row       `json:"rows"`
	Mapping        importer.MappingSpec `json:"mapping"`
	GroupByColumn  string               `json:"groupByColumn"`
	AccountMapping map[string]string    `json:"accountMapping"`
	DryRun         *bool                `json:"dryRun"`
	LedgerConfig   ledgerConfigDTO      `json:"ledgerConfig"`
	PresetID       *uuid.UUID           `json:"presetId"`
}

type transactionDTO struct {
	Date   string              `json:"date"`
	Payee  string              `json:"payee"`
	Notes  string              `json:"notes"`
	Amount decimal.NullDecimal `json:"amount"`
	Valid  bool                `json:"valid"`
}

type groupResultDTO struct {
	Group            string           `json:"group"`
	AccountID        string           `json:"accountId,omitempty"`
	TransactionCount int              `json:"transactionCount"`
	InvalidCount     int              `json:"invalidCount"`
	Preview          []transactionDTO `json:"preview"`
}

type importResponse struct {
	DryRun            bool             `json:"dryRun"`
	Groups            []groupResultDTO `json:"groups"`
	TotalTransactions int              `json:"totalTransactions"`
	TotalInvalid      int              `json:"totalInvalid"`
}

type columnsResponse struct {
	Headers  []string       `json:"headers"`
	Sample   []importer.Row `json:"sample"`
	RowCount int            `json:"rowCount"`
	Charset  string         `json:"charset,omitempty"`
	Profile  *profileDTO    `json:"profile,omitempty"`
}

type profileDTO struct {
	Name          string               `json:"name"`
	Mapping       importer.MappingSpec `json:"mapping"`
	GroupByColumn string               `json:"groupByColumn,omitempty"`
}

func (h *Handler) importRows(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.run(w, r, req)
}

func (h *Handler) importUpload(w http.ResponseWriter, r *http.Request) {
	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	var req importRequest
	if raw := r.FormValue("request"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			render.Error(w, http.StatusBadRequest, "invalid request field", err.Error())
			return
		}
	}

	req.Rows = table.Rows

	h.run(w, r, req)
}

func (h *Handler) columns(w http.ResponseWriter, r *http.Request) {
	table, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	sample := table.Rows[:min(sampleSize, len(table.Rows))]
	if sample == nil {
		sample = []importer.Row{}
	}

	resp := columnsResponse{
		Headers:  table.Headers,
		Sample:   sample,
		RowCount: len(table.Rows),
		Charset:  table.Charset,
	}

	if p, ok := profile.Detect(table.Headers); ok {
		resp.Profile = &profileDTO{Name: p.Name, Mapping: p.Mapping, GroupByColumn: p.GroupByColumn}
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, dto importRequest) {
	req, err := h.toRequest(r.Context(), dto)
	if err != nil {
		render.Err(w, err)
		return
	}

	result, err := h.importSvc.Import(r.Context(), req)
	if err != nil {
		render.Err(w, err)
		return
	}

	render.JSON(w, http.StatusOK, toResponse(result))
}

// toRequest applies the preset, if any, and the configured ledger defaults.
// Preview is the default: a live import must ask for dryRun=false.
func (h *Handler) toRequest(ctx context.Context, dto importRequest) (importer.Request, error) {
	if dto.PresetID != nil {
		if err := h.applyPreset(ctx, &dto); err != nil {
			return importer.Request{}, err
		}
	}

	mapping, err := dto.Mapping.Config()
	if err != nil {
		return importer.Request{}, err
	}

	dryRun := true
	if dto.DryRun != nil {
		dryRun = *dto.DryRun
	}

	return importer.Request{
		Rows:           dto.Rows,
		Mapping:        mapping,
		GroupByColumn:  dto.GroupByColumn,
		AccountMapping: dto.AccountMapping,
		DryRun:         dryRun,
		Ledger: h.ledgerDefaults.Resolve(ledger.Config{
			ServerURL:  dto.LedgerConfig.ServerURL,
			Credential: dto.LedgerConfig.Credential,
			BudgetID:   dto.LedgerConfig.BudgetID,
		}),
	}, nil
}

// applyPreset fills the fields the request left empty from the stored preset.
func (h *Handler) applyPreset(ctx context.Context, dto *importRequest) error {
	if h.presetSvc == nil {
		return fmt.Errorf("%w: presets are disabled", importer.ErrConfiguration)
	}

	p, err := h.presetSvc.Get(ctx, *dto.PresetID)
	if err != nil {
		return err
	}

	if len(dto.Mapping) == 0 {
		dto.Mapping = p.Settings.Mapping
	}

	if dto.GroupByColumn == "" {
		dto.GroupByColumn = p.Settings.GroupByColumn
	}

	if dto.AccountMapping == nil {
		dto.AccountMapping = p.Settings.AccountMapping
	}

	return nil
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*tabular.Table, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		render.Error(w, http.StatusBadRequest, "failed to parse form", err.Error())
		return nil, false
	}

	delimiter, err := tabular.ParseDelimiter(r.FormValue("delimiter"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid delimiter", err.Error())
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.Error(w, http.StatusBadRequest, "file field is required", "")
		return nil, false
	}
	defer file.Close()

	table, err := tabular.Read(file, header.Filename, delimiter, r.FormValue("sheet"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "failed to read file", err.Error())
		return nil, false
	}

	return table, true
}

func toResponse(result *importer.Result) importResponse {
	resp := importResponse{
		DryRun:            result.DryRun,
		Groups:            make([]groupResultDTO, 0, len(result.Groups)),
		TotalTransactions: result.TotalTransactions,
		TotalInvalid:      result.TotalInvalid,
	}

	for _, g := range result.Groups {
		preview := make([]transactionDTO, 0, len(g.Preview))
		for _, t := range g.Preview {
			preview = append(preview, transactionDTO{
				Date:   t.Date,
				Payee:  t.Payee,
				Notes:  t.Notes,
				Amount: t.Amount,
				Valid:  importer.IsValid(t),
			})
		}

		resp.Groups = append(resp.Groups, groupResultDTO{
			Group:            g.Group,
			AccountID:        g.AccountID,
			TransactionCount: g.TransactionCount,
			InvalidCount:     g.InvalidCount,
			Preview:          preview,
		})
	}

	return resp
}
