package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 認証後にコンテキストへ入った actor を書き出すハンドラ
func echoActor(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := ActorFromContext(r.Context())
		if !ok {
			t.Error("actor missing from context")
		}
		_, _ = w.Write([]byte(a.ID.String()))
	}
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestRequireAdmin_Stub(t *testing.T) {
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}
	h := RequireAdmin(StubAuthenticator{Admin: admin})(echoActor(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/news", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.ID.String(), rec.Body.String())
}

func TestRequireAdmin_JWT(t *testing.T) {
	a := newTestJWT()
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}
	viewer := Actor{ID: uuid.New(), Role: RoleViewer}
	adminToken, err := a.IssueToken(admin, time.Hour)
	require.NoError(t, err)
	viewerToken, err := a.IssueToken(viewer, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  string
	}{
		{name: "admin", header: "Bearer " + adminToken, wantCode: http.StatusOK},
		{name: "no token", header: "", wantCode: http.StatusUnauthorized, wantErr: "unauthorized"},
		{name: "invalid token", header: "Bearer nope", wantCode: http.StatusUnauthorized, wantErr: "unauthorized"},
		{name: "viewer", header: "Bearer " + viewerToken, wantCode: http.StatusForbidden, wantErr: "forbidden"},
	}

	h := RequireAdmin(a)(echoActor(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/news/"+uuid.NewString(), nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorBody(t, rec))
			} else {
				assert.Equal(t, admin.ID.String(), rec.Body.String())
			}
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}
