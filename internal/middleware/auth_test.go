package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-server/internal/config"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/utils"

	"github.com/gin-gonic/gin"
)

func testRouter(cfg *config.Config, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/protected", AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("", func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func tokenFor(t *testing.T, cfg *config.Config, role models.Role) string {
	t.Helper()
	user := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Role: role}
	accessToken, _, err := utils.GenerateTokens(user, cfg)
	if err != nil {
		t.Fatalf("GenerateTokens: %v", err)
	}
	return accessToken
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      5,
		JWTRefreshExpirationHours: 1,
	}
	router := testRouter(cfg)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + tokenFor(t, cfg, models.RolePatient), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected status %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      5,
		JWTRefreshExpirationHours: 1,
	}
	router := testRouter(cfg, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RolePatient))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, models.RoleAdmin))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for allowed role, got %d", w.Code)
	}
}
