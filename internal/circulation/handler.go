// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"libracore/internal/membership"
	"libracore/pkg/ledger"
)

type Handler struct {
	service  Service
	policies *PolicyTable
}

func NewHandler(service Service, policies *PolicyTable) *Handler {
	return &Handler{service: service, policies: policies}
}

// Routes mounts the circulation endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/checkout", h.handleCheckout)
	r.Post("/return", h.handleReturn)
	r.Post("/renew", h.handleRenew)
	r.Post("/lost", h.handleMarkLost)
	r.Post("/fines/pay", h.handlePayFine)
	r.Post("/holds", h.handlePlaceHold)
	r.Delete("/holds/{id}", h.handleCancelHold)
	r.Get("/policies", h.handleGetPolicies)
	r.Put("/policies", h.handleReplacePolicies)
}

func (h *Handler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID uuid.UUID `json:"member_id"`
		BookID   uuid.UUID `json:"book_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, decision, err := h.service.Checkout(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !decision.Allowed {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(decision)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID uuid.UUID `json:"loan_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := h.service.Return(r.Context(), req.LoanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID uuid.UUID `json:"loan_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, decision, err := h.service.Renew(r.Context(), req.LoanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !decision.Allowed {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(decision)
		return
	}

	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handleMarkLost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID uuid.UUID `json:"loan_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := h.service.MarkLost(r.Context(), req.LoanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handlePayFine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LoanID uuid.UUID `json:"loan_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := h.service.PayFine(r.Context(), req.LoanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	json.NewEncoder(w).Encode(loan)
}

func (h *Handler) handlePlaceHold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID uuid.UUID `json:"member_id"`
		BookID   uuid.UUID `json:"book_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hold, err := h.service.PlaceHold(r.Context(), req.MemberID, req.BookID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(hold)
}

func (h *Handler) handleCancelHold(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid hold ID", http.StatusBadRequest)
		return
	}

	if err := h.service.CancelHold(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetPolicies(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.policies.Snapshot())
}

func (h *Handler) handleReplacePolicies(w http.ResponseWriter, r *http.Request) {
	var req map[membership.Role]RolePolicy
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.policies.Replace(req)
	w.WriteHeader(http.StatusOK)
}

// writeServiceError maps a lost optimistic-concurrency race to 409 and
// everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrConcurrencyConflict) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
