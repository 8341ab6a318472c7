// Package api exposes the store's named mutation operations over HTTP.
// The routes are a thin JSON surface; all domain rules live in the store and
// engine packages.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/npatel/finledger/internal/advisor"
	"github.com/npatel/finledger/internal/budget"
	"github.com/npatel/finledger/internal/debt"
	"github.com/npatel/finledger/internal/models"
	"github.com/npatel/finledger/internal/store"
)

// Server wires the store and advisor into an HTTP handler.
type Server struct {
	store   *store.Store
	advisor advisor.Advisor
}

// NewServer returns the API server. advisor may be nil when no endpoint is
// configured; /advisor then always answers with the fallback message.
func NewServer(st *store.Store, adv advisor.Advisor) *Server {
	return &Server{store: st, advisor: adv}
}

// Router builds the chi router for the API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/snapshot", s.getSnapshot)
	r.Get("/notifications", s.getNotifications)
	r.Post("/notifications/{id}/read", s.markNotificationRead)

	r.Post("/transactions", s.addTransaction)
	r.Delete("/transactions/{id}", s.deleteTransaction)

	r.Post("/people", s.addPerson)
	r.Delete("/people/{id}", s.deletePerson)
	r.Post("/people/{id}/debts", s.addDebt)
	r.Put("/people/{id}/debts/{debtID}", s.updateDebt)
	r.Post("/people/{id}/debts/{debtID}/payments", s.recordPayment)

	r.Post("/goals", s.addGoal)
	r.Put("/goals/{id}", s.updateGoal)
	r.Delete("/goals/{id}", s.deleteGoal)

	r.Put("/budget", s.updateBudget)
	r.Put("/settings", s.updateSettings)

	r.Post("/categories", s.addCategory)
	r.Delete("/categories/{id}", s.deleteCategory)

	r.Post("/recurring", s.addRecurring)
	r.Delete("/recurring/{id}", s.deleteRecurring)

	r.Get("/export", s.export)
	r.Post("/import", s.importSnapshot)
	r.Post("/reset", s.reset)

	r.Post("/advisor", s.askAdvisor)

	return r
}

// requestLogger logs every request with method, path, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// respondErr maps domain errors onto HTTP statuses: missing records are 404,
// rejected budget drafts 422, everything else a validation 400.
func respondErr(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, budget.ErrRatioSum), errors.Is(err, budget.ErrNegativeIncome):
		status = http.StatusUnprocessableEntity
	}
	respond(w, status, errorBody{Error: err.Error()})
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) getSnapshot(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) getNotifications(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.store.Notifications())
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MarkNotificationRead(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) addTransaction(w http.ResponseWriter, r *http.Request) {
	var t models.Transaction
	if err := decode(r, &t); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddTransaction(t)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) addPerson(w http.ResponseWriter, r *http.Request) {
	var p models.Person
	if err := decode(r, &p); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddPerson(p)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePerson(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) addDebt(w http.ResponseWriter, r *http.Request) {
	var item models.DebtItem
	if err := decode(r, &item); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddDebt(chi.URLParam(r, "id"), item)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

type debtPatchRequest struct {
	Amount     *float64   `json:"amount"`
	PaidAmount *float64   `json:"paidAmount"`
	DueDate    *time.Time `json:"dueDate"`
	Notes      *string    `json:"notes"`
}

func (s *Server) updateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtPatchRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	updated, err := s.store.UpdateDebt(chi.URLParam(r, "id"), chi.URLParam(r, "debtID"), debt.Patch{
		Amount:     req.Amount,
		PaidAmount: req.PaidAmount,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

type paymentResponse struct {
	Debt    models.DebtItem `json:"debt"`
	Applied float64         `json:"applied"`
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	updated, applied, err := s.store.RecordPayment(chi.URLParam(r, "id"), chi.URLParam(r, "debtID"), req.Amount)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, paymentResponse{Debt: updated, Applied: applied})
}

func (s *Server) addGoal(w http.ResponseWriter, r *http.Request) {
	var g models.Goal
	if err := decode(r, &g); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddGoal(g)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	var g models.Goal
	if err := decode(r, &g); err != nil {
		respondErr(w, err)
		return
	}
	updated, err := s.store.UpdateGoal(chi.URLParam(r, "id"), g)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) updateBudget(w http.ResponseWriter, r *http.Request) {
	var cfg models.BudgetConfig
	if err := decode(r, &cfg); err != nil {
		respondErr(w, err)
		return
	}
	if err := s.store.UpdateBudget(cfg); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, cfg)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var st models.AppSettings
	if err := decode(r, &st); err != nil {
		respondErr(w, err)
		return
	}
	if err := s.store.UpdateSettings(st); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := decode(r, &c); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddCategory(c)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) addRecurring(w http.ResponseWriter, r *http.Request) {
	var rt models.RecurringTransaction
	if err := decode(r, &rt); err != nil {
		respondErr(w, err)
		return
	}
	created, err := s.store.AddRecurring(rt)
	if err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (s *Server) deleteRecurring(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRecurring(chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.ExportJSON()
	if err != nil {
		slog.Error("export failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Error: "export failed"})
		return
	}
	filename := fmt.Sprintf("finledger-export-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func (s *Server) importSnapshot(w http.ResponseWriter, r *http.Request) {
	// The whole body is the snapshot document.
	var buf json.RawMessage
	if err := decode(r, &buf); err != nil {
		respondErr(w, err)
		return
	}
	if err := s.store.Import(r.Context(), buf); err != nil {
		respondErr(w, err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		slog.Error("reset failed", "error", err)
		respond(w, http.StatusInternalServerError, errorBody{Error: "reset failed"})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

type advisorRequest struct {
	Question string `json:"question"`
}

type advisorResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback,omitempty"`
}

// askAdvisor answers a free-text question about the user's finances. Advisor
// failures degrade to the fallback message; the endpoint never 5xxs for them.
func (s *Server) askAdvisor(w http.ResponseWriter, r *http.Request) {
	var req advisorRequest
	if err := decode(r, &req); err != nil {
		respondErr(w, err)
		return
	}

	if s.advisor == nil {
		respond(w, http.StatusOK, advisorResponse{Answer: advisor.FallbackMessage, Fallback: true})
		return
	}

	summary := advisor.BuildContext(s.store.Snapshot())
	answer, err := s.advisor.Ask(r.Context(), summary, req.Question)
	if err != nil {
		slog.Warn("advisor request failed", "error", err)
		respond(w, http.StatusOK, advisorResponse{Answer: advisor.FallbackMessage, Fallback: true})
		return
	}
	respond(w, http.StatusOK, advisorResponse{Answer: answer})
}
