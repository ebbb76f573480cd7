package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	"github.com/kanditextile/kandipos/internal/app"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// AppContextKey stores the application container in the echo context.
const AppContextKey = "kandipos.app"

var server *WebServer

type WebServer struct {
	root *echo.Echo
	appx app.AppContext
}

// templateRenderer renders the embedded HTML pages.
type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// jsonSerializer is a json-iterator backed echo JSONSerializer.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsoniter.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// Init builds the web server around the application container.
func Init(appx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.Debug = appx.Config().System.Debug
	e.JSONSerializer = jsonSerializer{}
	e.Renderer = &templateRenderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}

	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(appx.Config().Web.Secret))))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appx)
			return next(c)
		}
	})

	server = &WebServer{root: e, appx: appx}
	server.initAuthRoutes()
	return server
}

// Instance returns the initialized web server.
func Instance() *WebServer {
	return server
}

// Listen blocks serving HTTP on the configured address.
func Listen() error {
	cfg := server.appx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops accepting connections.
func (s *WebServer) Shutdown() error {
	return s.root.Close()
}

// Echo exposes the underlying echo instance (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// GET registers a public route.
func GET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

// POST registers a public route.
func POST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// PageGET registers an admin page route behind the session gate.
func PageGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, PageAuthRequired)
}

// ApiGET registers an admin JSON route behind the session-or-token gate.
func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, ApiAuthRequired)
}

// ApiPOST registers an admin JSON route behind the session-or-token gate.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, ApiAuthRequired)
}

// ApiDELETE registers an admin JSON route behind the session-or-token gate.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h, ApiAuthRequired)
}
