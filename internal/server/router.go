package server

import (
	"log"
	"net/http"
	"time"

	"github.com/diewo77/presupuestos/internal/handlers"
	"github.com/diewo77/presupuestos/internal/httpx"
	"github.com/diewo77/presupuestos/internal/services"
	"github.com/diewo77/presupuestos/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(st *store.Store) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight storage check – no detail in the body
		if err := st.Ping(); err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Profile endpoints (single record, create-or-overwrite)
	ph := handlers.NewProfileHandler(st)
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.Get(w, r)
		case http.MethodPut, http.MethodPost:
			ph.Save(w, r)
		default:
			w.Header().Set("Allow", "GET,PUT,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})

	// Client endpoints. List/Create via /clients. Update/Delete via
	// /clients/update & /clients/delete for simplicity.
	ch := handlers.NewClientHandler(st)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/update", ch.Update)
	mux.HandleFunc("/clients/delete", ch.Delete)

	// Catalog endpoints, including whole-collection JSON import/export.
	catalogSvc := services.NewCatalogService(st)
	cah := handlers.NewCatalogHandler(st, catalogSvc)
	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cah.List(w, r)
		case http.MethodPost:
			cah.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/catalog/update", cah.Update)
	mux.HandleFunc("/catalog/delete", cah.Delete)
	mux.HandleFunc("/catalog/export", cah.Export)
	mux.HandleFunc("/catalog/import", cah.Import)

	// Budget endpoints: wizard, persistence, document, distribution.
	budgetSvc := services.NewBudgetService(st)
	shareSvc := services.NewShareService(st, budgetSvc)
	bh := handlers.NewBudgetHandler(st, budgetSvc, shareSvc)
	mux.HandleFunc("/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			bh.List(w, r)
		case http.MethodPost:
			bh.Save(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/budgets/new", bh.NewDraft)
	mux.HandleFunc("/budgets/get", bh.Get)
	mux.HandleFunc("/budgets/delete", bh.Delete)
	mux.HandleFunc("/budgets/bind-client", bh.BindClient)
	mux.HandleFunc("/budgets/category", bh.SetCategory)
	mux.HandleFunc("/budgets/validate", bh.Validate)
	mux.HandleFunc("/budgets/options", bh.Options)
	mux.HandleFunc("/budgets/pdf", bh.PDF)
	mux.HandleFunc("/budgets/share", bh.ShareVia)
	mux.HandleFunc("/budgets/accept", bh.Accept)
	mux.HandleFunc("/budgets/status", bh.UpdateStatus)

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("Presupuestos API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
