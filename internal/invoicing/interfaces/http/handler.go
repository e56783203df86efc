package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"practice-cloud/internal/audit"
	"practice-cloud/internal/auth"
	"practice-cloud/internal/invoicing/application"
	invoicing "practice-cloud/internal/invoicing/domain"
)

// Handler provides the invoicing HTTP endpoints.
type Handler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("invoicing handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles /api/v1/invoices and subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/invoices/pending":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handlePending(w, r)
	case r.URL.Path == "/api/v1/invoices":
		switch r.Method {
		case http.MethodGet:
			h.handleSettled(w, r)
		case http.MethodPost:
			h.handleConfirm(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case strings.HasPrefix(r.URL.Path, "/api/v1/invoices/"):
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleVoid(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	batches, err := h.service.Pending(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"batches": batches})
}

func (h *Handler) handleSettled(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.Settled(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"invoices": invoices})
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var assignment invoicing.InvoiceAssignment
	if err := json.NewDecoder(r.Body).Decode(&assignment); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	if err := h.service.Confirm(r.Context(), assignment); err != nil {
		switch {
		case errors.Is(err, invoicing.ErrEmptyInvoiceNumber), errors.Is(err, invoicing.ErrEmptyBatch):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, invoicing.ErrPartialApply):
			// The transaction rolled back; nothing was stamped.
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.logAudit(r, "invoice.confirm", assignment.InvoiceNumber, map[string]any{
		"issue_date": assignment.IssueDate,
		"sessions":   len(assignment.SessionIDs),
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleVoid(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimPrefix(r.URL.Path, "/api/v1/invoices/")
	if number == "" || strings.Contains(number, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := h.service.Void(r.Context(), invoicing.InvoiceVoid{InvoiceNumber: number}); err != nil {
		switch {
		case errors.Is(err, invoicing.ErrInvoiceNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, invoicing.ErrEmptyInvoiceNumber):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	h.logAudit(r, "invoice.void", number, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logAudit(r *http.Request, action, invoiceNumber string, metadata map[string]any) {
	accountID := auth.AccountIDFromContext(r.Context())
	if h.auditLogger == nil || accountID == "" {
		return
	}
	var meta []byte
	if metadata != nil {
		meta, _ = json.Marshal(metadata)
	}
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		AccountID:    accountID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "invoice",
		ResourceID:   invoiceNumber,
		Metadata:     meta,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}
