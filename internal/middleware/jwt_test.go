package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vesdm/institute-backend/internal/config"
	"github.com/vesdm/institute-backend/internal/model"
	"github.com/vesdm/institute-backend/internal/service"
)

func setupRouter(t *testing.T, roles ...model.Role) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	authService := service.NewAuthService(cfg, nil)

	r := gin.New()
	group := r.Group("/protected", RequireAuth(authService))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("", func(c *gin.Context) {
		actor := GetActor(c)
		c.JSON(http.StatusOK, gin.H{"actor_id": actor.ID.String(), "role": actor.Role})
	})
	return r, authService
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, authService := setupRouter(t)

	t.Run("missing token", func(t *testing.T) {
		if w := request(r, ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if w := request(r, "not-a-jwt"); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := authService.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		if w := request(r, token); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	r, authService := setupRouter(t, model.RoleAdmin)

	adminToken, err := authService.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	studentToken, err := authService.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if w := request(r, adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
	if w := request(r, studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student status = %d, want 403", w.Code)
	}
}

func TestRequireRoleMultiple(t *testing.T) {
	r, authService := setupRouter(t, model.RoleAdmin, model.RoleFranchisee)

	franchiseeToken, err := authService.GenerateToken(&model.User{ID: uuid.New(), Role: model.RoleFranchisee})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := request(r, franchiseeToken); w.Code != http.StatusOK {
		t.Errorf("franchisee status = %d, want 200", w.Code)
	}
}
