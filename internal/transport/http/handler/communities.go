package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumni-connect-api/internal/application/community"
	"github.com/alumni-connect-api/internal/domain"
	"github.com/alumni-connect-api/internal/transport/http/middleware"
)

// CommunityHandler handles community CRUD and icon upload.
type CommunityHandler struct {
	svc community.Service
}

func NewCommunityHandler(svc community.Service) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CommunityFilter{
		Search:   q.Get("search"),
		Platform: q.Get("platform"),
		Tag:      q.Get("tag"),
		SortBy:   q.Get("sort_by"),
	}
	views, err := h.svc.List(r.Context(), filter, callerEmail(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"communities": views})
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), callerEmail(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Create(r.Context(), callerEmail(r), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), callerEmail(r), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), callerEmail(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "community deleted"})
}

// UploadIcon accepts a base64-encoded image and stores it as the community
// icon.
func (h *CommunityHandler) UploadIcon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == "" {
		writeError(w, http.StatusBadRequest, "data required")
		return
	}
	url, err := h.svc.UploadIcon(r.Context(), chi.URLParam(r, "id"), callerEmail(r), req.Data)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"icon_url": url})
}

// callerEmail returns the authenticated caller's email, or "" when anonymous.
func callerEmail(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.Email
	}
	return ""
}
