package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect-api/internal/application/profile"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/transport/http/middleware"
)

// ProfileHandler handles profile and identifier-registration endpoints.
type ProfileHandler struct {
	svc profile.Service
}

func NewProfileHandler(svc profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me returns the caller's own profile with identifier labels.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.svc.Me(r.Context(), claims.UID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get returns another user's profile by uid. Identifier details stay hidden
// unless the caller looks up their own uid.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	var requesterUID string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		requesterUID = claims.UID
	}
	view, err := h.svc.GetByUID(r.Context(), chi.URLParam(r, "uid"), requesterUID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RegisterIdentifiers bulk-registers identifiers on the caller's profile.
func (h *ProfileHandler) RegisterIdentifiers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.RegisterIdentifiersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	views, err := h.svc.RegisterIdentifiers(r.Context(), claims.UID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"identifiers": views})
}

// AddIdentifier registers a single identifier.
func (h *ProfileHandler) AddIdentifier(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in domain.IdentifierInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req := domain.RegisterIdentifiersRequest{Identifiers: []domain.IdentifierInput{in}}
	views, err := h.svc.RegisterIdentifiers(r.Context(), claims.UID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, views[0])
}

// DeleteIdentifier removes one of the caller's identifiers.
func (h *ProfileHandler) DeleteIdentifier(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.DeleteIdentifier(r.Context(), claims.UID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "identifier removed"})
}
