package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"practice-cloud/internal/audit"
	"practice-cloud/internal/auth"
	finance "practice-cloud/internal/finance/domain"
	"practice-cloud/internal/reconciliation/application"
	reconciliation "practice-cloud/internal/reconciliation/domain"
)

// maxStatementBytes caps uploaded statement size.
const maxStatementBytes = 4 << 20

// Handler provides the reconciliation HTTP endpoints.
type Handler struct {
	service     *application.Service
	auditLogger audit.Logger
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("reconciliation handler: nil service")
	}
	return &Handler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles /api/v1/reconciliation subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/reconciliation/statement":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleStatement(w, r)
	case "/api/v1/reconciliation/match":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleMatch(w, r)
	case "/api/v1/reconciliation/confirm":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleConfirm(w, r)
	case "/api/v1/reconciliation/pending":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handlePending(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxStatementBytes))
	if err != nil {
		http.Error(w, "failed to read statement", http.StatusBadRequest)
		return
	}

	entries, err := h.service.Parse(string(body))
	if err != nil {
		respondParseError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Entries []reconciliation.Entry `json:"entries"`
		Mapping map[string]string      `json:"mapping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Match(r.Context(), request.Entries, request.Mapping)
	if err != nil {
		var unmapped *reconciliation.UnmappedEntriesError
		if errors.As(err, &unmapped) {
			respondJSONError(w, http.StatusUnprocessableEntity, err.Error(), map[string]any{
				"unmapped_entries": unmapped.EntryIDs,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Proposals []finance.PaymentConfirmation `json:"proposals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	report, err := h.service.Confirm(r.Context(), request.Proposals)
	if err != nil {
		if errors.Is(err, finance.ErrEmptySessionID) || errors.Is(err, finance.ErrSessionNotFound) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.logConfirm(r, report)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (h *Handler) logConfirm(r *http.Request, report application.ConfirmReport) {
	accountID := auth.AccountIDFromContext(r.Context())
	if h.auditLogger == nil || accountID == "" {
		return
	}
	meta, _ := json.Marshal(report)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		AccountID:    accountID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "reconciliation.confirm",
		ResourceType: "payment",
		Metadata:     meta,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Pending(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"groups": groups})
}

func respondParseError(w http.ResponseWriter, err error) {
	var missing *reconciliation.MissingColumnsError
	if errors.As(err, &missing) {
		respondJSONError(w, http.StatusUnprocessableEntity, err.Error(), map[string]any{
			"missing_columns": missing.Columns,
		})
		return
	}
	if errors.Is(err, reconciliation.ErrEmptyStatement) || errors.Is(err, reconciliation.ErrNoCredits) {
		respondJSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func respondJSONError(w http.ResponseWriter, status int, message string, detail map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]any{"error": message}
	for key, value := range detail {
		payload[key] = value
	}
	_ = json.NewEncoder(w).Encode(payload)
}
