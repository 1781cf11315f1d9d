package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alumni-connect-api/internal/domain"
	jwtinfra "github.com/alumni-connect-api/internal/infrastructure/jwt"
	"github.com/alumni-connect-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockVerifySvc struct{ mock.Mock }

func (m *mockVerifySvc) Verify(ctx context.Context, callerEmail string, req *domain.VerifyIdentifierRequest) (*domain.VerifyIdentifierResult, error) {
	args := m.Called(ctx, callerEmail, req)
	if r, _ := args.Get(0).(*domain.VerifyIdentifierResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func authedRequest(method, target string, body []byte, email string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	claims := &jwtinfra.Claims{UID: "u1", Email: email, Name: "Tester"}
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, claims)
	return req.WithContext(ctx)
}

// --- tests ---

func TestVerify_Found(t *testing.T) {
	svc := &mockVerifySvc{}
	svc.On("Verify", mock.Anything, "admin@example.edu", mock.AnythingOfType("*domain.VerifyIdentifierRequest")).
		Return(&domain.VerifyIdentifierResult{Found: true, Name: "Alice", Email: "alice@example.edu"}, nil)

	body, _ := json.Marshal(map[string]string{"identifier": "alice#1234"})
	req := authedRequest(http.MethodPost, "/v1/connect/verify-identifier", body, "admin@example.edu")
	rr := httptest.NewRecorder()
	NewVerifyHandler(svc, nil).Verify(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result domain.VerifyIdentifierResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.True(t, result.Found)
	assert.Equal(t, "Alice", result.Name)
}

func TestVerify_Forbidden(t *testing.T) {
	svc := &mockVerifySvc{}
	svc.On("Verify", mock.Anything, "user@example.edu", mock.Anything).
		Return(nil, domain.ErrForbidden)

	body, _ := json.Marshal(map[string]string{"identifier": "alice#1234"})
	req := authedRequest(http.MethodPost, "/v1/connect/verify-identifier", body, "user@example.edu")
	rr := httptest.NewRecorder()
	NewVerifyHandler(svc, nil).Verify(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestVerify_BadBody(t *testing.T) {
	svc := &mockVerifySvc{}

	req := authedRequest(http.MethodPost, "/v1/connect/verify-identifier", []byte("{not json"), "admin@example.edu")
	rr := httptest.NewRecorder()
	NewVerifyHandler(svc, nil).Verify(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerify_Miss(t *testing.T) {
	svc := &mockVerifySvc{}
	svc.On("Verify", mock.Anything, "admin@example.edu", mock.Anything).
		Return(&domain.VerifyIdentifierResult{Found: false}, nil)

	body, _ := json.Marshal(map[string]string{"identifier": "nobody#0000"})
	req := authedRequest(http.MethodPost, "/v1/connect/verify-identifier", body, "admin@example.edu")
	rr := httptest.NewRecorder()
	NewVerifyHandler(svc, nil).Verify(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result domain.VerifyIdentifierResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.False(t, result.Found)
	assert.Empty(t, result.Name)
}
