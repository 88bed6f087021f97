package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"reused when present", "abc-123", true},
		{"replaced when too long", strings.Repeat("x", 129), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			var ok bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx, ok = RequestIDFromContext(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()

			RequestID(next).ServeHTTP(rr, req)

			require.True(t, ok)
			require.Equal(t, fromCtx, rr.Header().Get(RequestIDHeader))
			if tt.wantSame {
				require.Equal(t, tt.incoming, fromCtx)
				return
			}
			_, err := uuid.Parse(fromCtx)
			require.NoError(t, err)
		})
	}
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := RequestIDFromContext(req.Context())
	require.False(t, ok)
}
