package http

import (
	"context"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/metrics"
	"expenses/internal/middleware/security"
	"expenses/internal/middleware/trace"
	"expenses/internal/services"
	"expenses/internal/transfer"
	appweb "expenses/web"
)

// ExpenseService is the core the web UI drives.
type ExpenseService interface {
	AddExpense(ctx context.Context, in services.AddExpenseInput) (core.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	Ledger(ctx context.Context) (core.Ledger, error)
	Settings() core.Settings
	UpdateSettings(formatID, currencySymbol string) (core.Settings, error)
}

// Transfer imports and exports delimited files.
type Transfer interface {
	Import(ctx context.Context, r io.Reader) (*transfer.Report, error)
	Export(ctx context.Context, w io.Writer, currencySymbol string) (int, error)
}

// HealthChecker reports whether the record store is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps groups what the server needs to serve requests.
type Deps struct {
	Expenses       ExpenseService
	Transfer       Transfer
	Health         HealthChecker
	Metrics        *metrics.Recorder
	Logger         *log.Logger
	MaxImportBytes int64
}

const (
	defaultMaxImportBytes = 10 << 20
	readyTimeout          = 2 * time.Second
)

type Server struct {
	http.Server
	templates      *template.Template
	expenses       ExpenseService
	transfer       Transfer
	health         HealthChecker
	logger         *log.Logger
	maxImportBytes int64
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	maxImport := deps.MaxImportBytes
	if maxImport <= 0 {
		maxImport = defaultMaxImportBytes
	}

	mux := http.NewServeMux()
	s := &Server{
		expenses:       deps.Expenses,
		transfer:       deps.Transfer,
		health:         deps.Health,
		logger:         logger.WithComponent(log.ComponentHTTP),
		maxImportBytes: maxImport,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /", handleNotFound)
	mux.HandleFunc("GET /ui/ledger", s.handleLedger)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("POST /import", s.handleImport)
	mux.HandleFunc("GET /export", s.handleExport)
	mux.HandleFunc("POST /settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(logger, deps.Metrics, routeLabel)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// routeLabel keeps the metrics label set bounded to registered patterns.
func routeLabel(r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			log.FromContext(r.Context()).ErrorContext(r.Context(), "Readiness check failed", log.FieldError, err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("store unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			log.FieldError, err,
			"template", name)
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
