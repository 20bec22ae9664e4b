package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/pkg/auth"
)

var testSecret = []byte("test-secret-key-at-least-32-chars!!")

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, "taskhive-test", time.Minute)
	expired := auth.NewTokenService(testSecret, "taskhive-test", -time.Minute)

	userID := uuid.New()
	tenantID := uuid.New()

	validToken, err := tokens.Issue(userID, tenantID, "jane@acme.com")
	if err != nil {
		t.Fatal(err)
	}
	expiredToken, err := expired.Issue(userID, tenantID, "jane@acme.com")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotTenant uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserID(r.Context())
				gotTenant, _ = GetTenantID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(tokens)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotUser != userID {
					t.Errorf("context user = %v, want %v", gotUser, userID)
				}
				if gotTenant != tenantID {
					t.Errorf("context tenant = %v, want %v", gotTenant, tenantID)
				}
			}
		})
	}
}

func TestAuth_CaseInsensitiveBearer(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, "taskhive-test", time.Minute)
	token, err := tokens.Issue(uuid.New(), uuid.New(), "jane@acme.com")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
