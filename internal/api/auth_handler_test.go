package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/mocks"
	"github.com/taskwell/taskwell-api/internal/service"
	"github.com/taskwell/taskwell-api/internal/store"
)

func TestRegisterHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		body         interface{}
		registerErr  error
		wantStatus   int
		wantDetail   string
		skipRegister bool
	}{
		{
			name:       "successful registration",
			body:       map[string]string{"email": "new@example.com", "password": "Passw0rd!"},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "weak password",
			body:        map[string]string{"email": "new@example.com", "password": "weak1234"},
			registerErr: domain.ErrWeakPassword,
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetail:  "Password does not meet strength requirements",
		},
		{
			name:        "duplicate email",
			body:        map[string]string{"email": "dup@example.com", "password": "Passw0rd!"},
			registerErr: store.ErrEmailExists,
			wantStatus:  http.StatusConflict,
			wantDetail:  "Email already registered",
		},
		{
			name:         "malformed email rejected by validation",
			body:         map[string]string{"email": "not-an-email", "password": "Passw0rd!"},
			wantStatus:   http.StatusUnprocessableEntity,
			skipRegister: true,
		},
		{
			name:         "missing fields rejected by validation",
			body:         map[string]string{},
			wantStatus:   http.StatusUnprocessableEntity,
			skipRegister: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			registerCalled := false
			userService := &MockUserService{
				RegisterFn: func(ctx context.Context, email, password string) (*domain.User, error) {
					registerCalled = true
					if tc.registerErr != nil {
						return nil, tc.registerErr
					}
					return &domain.User{ID: userID, Email: email}, nil
				},
			}
			handler := NewAuthHandler(userService, &mocks.MockJWTService{})

			req := newJSONRequest(t, http.MethodPost, "/auth/register", tc.body)
			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantDetail != "" {
				requireDetail(t, rr, tc.wantDetail)
			}
			if tc.skipRegister {
				assert.False(t, registerCalled, "validation failures must not reach the service")
			}

			if tc.wantStatus == http.StatusCreated {
				body := decodeBody(t, rr)
				assert.Equal(t, userID.String(), body["id"])
				assert.Equal(t, "new@example.com", body["email"])
				assert.NotContains(t, body, "password")
				assert.NotContains(t, body, "hashed_password")
			}
		})
	}
}

func TestTokenHandler(t *testing.T) {
	userID := uuid.New()

	newTokenRequest := func(form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("valid credentials return bearer token", func(t *testing.T) {
		userService := &MockUserService{
			AuthenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				require.Equal(t, "login@example.com", email)
				require.Equal(t, "Passw0rd!", password)
				return &domain.User{ID: userID, Email: email}, nil
			},
		}
		jwtService := &mocks.MockJWTService{Token: "signed-token"}
		handler := NewAuthHandler(userService, jwtService)

		rr := httptest.NewRecorder()
		handler.Token(rr, newTokenRequest(url.Values{
			"username": {"login@example.com"},
			"password": {"Passw0rd!"},
		}))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "signed-token", body["access_token"])
		assert.Equal(t, "bearer", body["token_type"])
	})

	t.Run("unknown email returns 404", func(t *testing.T) {
		userService := &MockUserService{
			AuthenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userService, &mocks.MockJWTService{})

		rr := httptest.NewRecorder()
		handler.Token(rr, newTokenRequest(url.Values{
			"username": {"nobody@example.com"},
			"password": {"Passw0rd!"},
		}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		requireDetail(t, rr, "User does not exist")
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		userService := &MockUserService{
			AuthenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, service.ErrIncorrectPassword
			},
		}
		handler := NewAuthHandler(userService, &mocks.MockJWTService{})

		rr := httptest.NewRecorder()
		handler.Token(rr, newTokenRequest(url.Values{
			"username": {"login@example.com"},
			"password": {"wrong"},
		}))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		requireDetail(t, rr, "Incorrect password")
	})

	t.Run("missing credentials return 422", func(t *testing.T) {
		handler := NewAuthHandler(&MockUserService{}, &mocks.MockJWTService{})

		rr := httptest.NewRecorder()
		handler.Token(rr, newTokenRequest(url.Values{"username": {"login@example.com"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}
