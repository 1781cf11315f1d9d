package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect-api/internal/application/community"
	"github.com/alumni-connect-api/internal/domain"
)

// AdminHandler handles community-admin management and role lookup.
type AdminHandler struct {
	svc community.Service
}

func NewAdminHandler(svc community.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	admin, err := h.svc.AddAdmin(r.Context(), chi.URLParam(r, "id"), callerEmail(r), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.svc.ListAdmins(r.Context(), chi.URLParam(r, "id"), callerEmail(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

func (h *AdminHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveAdmin(r.Context(), chi.URLParam(r, "adminID"), callerEmail(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "admin removed"})
}

// UserRoles returns the caller's role summary for the frontend.
func (h *AdminHandler) UserRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.UserRoles(r.Context(), callerEmail(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}
