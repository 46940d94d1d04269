package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	apiHttp "github.com/MrJamesThe3rd/ledgerbridge/internal/http"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/ledgerbridge/internal/http/ledger"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/importer"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	conn := ledger.NewMockConnector(gomock.NewController(t))

	return apiHttp.New(
		apiHttp.Options{AllowedOrigins: []string{"http://ui.test"}, Timeout: 5 * time.Second},
		importcsv.NewHandler(importer.NewService(conn), nil, config.Ledger{}, 1<<20),
		ledgerHandler.NewHandler(conn, config.Ledger{}),
		nil,
	)
}

func TestRouter(t *testing.T) {
	router := newRouter(t)

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/import", nil)
		req.Header.Set("Origin", "http://ui.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "http://ui.test", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Import mounted", func(t *testing.T) {
		body := `{"rows":[{"a":"1"}],"mapping":{"amount":{"type":"direct","column":"a"}}}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"totalInvalid":1`)
	})

	t.Run("Presets disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
