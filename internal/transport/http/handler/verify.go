package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alumni-connect-api/internal/application/identifier"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/metrics"
)

// VerifyHandler handles admin-gated identifier verification.
type VerifyHandler struct {
	svc       identifier.Service
	collector *metrics.Collector
}

func NewVerifyHandler(svc identifier.Service, collector *metrics.Collector) *VerifyHandler {
	return &VerifyHandler{svc: svc, collector: collector}
}

func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyIdentifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.Verify(r.Context(), callerEmail(r), &req)
	if err != nil {
		if h.collector != nil && errors.Is(err, domain.ErrForbidden) {
			h.collector.RecordVerification("forbidden")
		}
		writeDomainError(w, err)
		return
	}
	if h.collector != nil {
		if result.Found {
			h.collector.RecordVerification("found")
		} else {
			h.collector.RecordVerification("miss")
		}
	}
	writeJSON(w, http.StatusOK, result)
}
