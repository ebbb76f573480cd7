package adminapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kanditextile/kandipos/config"
	"github.com/kanditextile/kandipos/internal/adminapi"
	"github.com/kanditextile/kandipos/internal/app"
	"github.com/kanditextile/kandipos/internal/ledger"
	"github.com/kanditextile/kandipos/internal/receipt"
	"github.com/kanditextile/kandipos/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app        *app.Application
	echo       *echo.Echo
	svc        *ledger.Service
	receiptDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := new(config.AppConfig)
	*cfg = *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.System.Location = "UTC"
	cfg.Logger.FileEnable = false
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = "pos.db"
	cfg.Web.Username = "KANDI-TEXTILE"
	cfg.Web.Password = "1234"

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(func() {
		application.Bus().WaitAsync()
		application.Release()
	})

	svc := ledger.NewService(
		ledger.NewGormSaleRepository(application.DB()),
		application.Bus(),
		receipt.NewFileSink(cfg.ReceiptDir()),
		application,
	)

	ws := webserver.Init(application)
	adminapi.Register(svc)

	return &testEnv{
		app:        application,
		echo:       ws.Echo(),
		svc:        svc,
		receiptDir: cfg.ReceiptDir(),
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) getJSON(t *testing.T, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rec := env.do(httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func (env *testEnv) postJSON(t *testing.T, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return env.do(req)
}

// loginToken obtains a bearer token through the JSON login flow.
func (env *testEnv) loginToken(t *testing.T) string {
	t.Helper()
	rec := env.postJSON(t, "/admin/login", `{"username":"KANDI-TEXTILE","password":"1234"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	return resp["token"]
}

// loginSession performs the form login and returns the session cookies.
func (env *testEnv) loginSession(t *testing.T, username, password string) ([]*http.Cookie, *httptest.ResponseRecorder) {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)
	return rec.Result().Cookies(), rec
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}
