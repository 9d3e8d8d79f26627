package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/fortuna/timevalue-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	subject string
	err     error
}

func (v *fakeValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: v.subject},
		CustomClaims:     &CustomClaims{Email: "test@example.com"},
	}, nil
}

type fakeUserProvider struct {
	users map[string]uuid.UUID
	err   error
}

func (p *fakeUserProvider) GetUserIDByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	if p.err != nil {
		return uuid.Nil, p.err
	}
	if id, ok := p.users[auth0ID]; ok {
		return id, nil
	}
	return uuid.Nil, domain.ErrUserNotFound
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	provider := &fakeUserProvider{users: map[string]uuid.UUID{"auth0|known": userID}}

	tests := []struct {
		name       string
		header     string
		validator  *fakeValidator
		wantStatus int
		wantUser   uuid.UUID
	}{
		{"valid token", "Bearer good", &fakeValidator{subject: "auth0|known"}, http.StatusOK, userID},
		{"lowercase scheme", "bearer good", &fakeValidator{subject: "auth0|known"}, http.StatusOK, userID},
		{"missing header", "", &fakeValidator{subject: "auth0|known"}, http.StatusUnauthorized, uuid.Nil},
		{"wrong scheme", "Basic abc", &fakeValidator{subject: "auth0|known"}, http.StatusUnauthorized, uuid.Nil},
		{"no token", "Bearer", &fakeValidator{subject: "auth0|known"}, http.StatusUnauthorized, uuid.Nil},
		{"invalid token", "Bearer bad", &fakeValidator{err: errors.New("expired")}, http.StatusUnauthorized, uuid.Nil},
		{"unknown user", "Bearer good", &fakeValidator{subject: "auth0|stranger"}, http.StatusUnauthorized, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/time-value/report", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var gotUser uuid.UUID
			mw := NewAuthMiddlewareWithValidator(tt.validator, provider)
			err := mw.Authenticate()(func(c echo.Context) error {
				gotUser = GetUserID(c)
				return c.String(http.StatusOK, "ok")
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), kindUnauthorized.typeURI())
			}
		})
	}
}

func TestAuthenticate_LookupFailureIsNotUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/time-value/report", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	provider := &fakeUserProvider{err: errors.New("connection refused")}
	mw := NewAuthMiddlewareWithValidator(&fakeValidator{subject: "auth0|known"}, provider)
	called := false
	err := mw.Authenticate()(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), kindLookupFailed.typeURI())
}

func TestContextAccessors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "", GetAuth0ID(c))
	assert.Nil(t, GetClaims(c))
	assert.Equal(t, uuid.Nil, GetUserID(c))

	userID := uuid.New()
	claims := &validator.ValidatedClaims{RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|12345"}}
	ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	ctx = context.WithValue(ctx, UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))

	assert.Equal(t, "auth0|12345", GetAuth0ID(c))
	assert.Same(t, claims, GetClaims(c))
	assert.Equal(t, userID, GetUserID(c))
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com"}

	assert.NoError(t, claims.Validate(context.Background()))
}
