package middleware

import (
	"net/http"
	"testing"
	"time"

	"loansaarthi-backend/internal/domain/actor"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func setupAuthEcho(roles ...actor.Role) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	g := e.Group("", Auth(testSecret))
	h := func(c echo.Context) error {
		a, _ := ActorFrom(c)
		return c.JSON(http.StatusOK, map[string]string{"id": a.ID, "role": string(a.Role)})
	}
	g.GET("/me", h)
	g.POST("/staff", h, RequireRole(roles...))
	return e
}

func TestAuth(t *testing.T) {
	e := setupAuthEcho(actor.StaffRoles()...)

	expiredClaims := Claims{Role: "ADMIN", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString(testSecret)

	otherKey, _ := SignToken([]byte("other"), actor.Actor{ID: "u1", Role: actor.RoleAdmin}, time.Hour)
	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "ROOT", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}).SignedString(testSecret)
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: "ADMIN"}).SignedString(testSecret)
	noneAlg, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "ADMIN", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherKey, http.StatusUnauthorized},
		{"unknown role", "Bearer " + badRole, http.StatusUnauthorized},
		{"missing subject", "Bearer " + noSub, http.StatusUnauthorized},
		{"alg none", "Bearer " + noneAlg, http.StatusUnauthorized},
		{"ok", bearer(t, "staff-1"), http.StatusOK},
		{"ok lowercase scheme", "bearer " + bearer(t, "staff-1")[len("Bearer "):], http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr := map[string]string{}
			if tt.header != "" {
				hdr[echo.HeaderAuthorization] = tt.header
			}
			rec := doReq(t, e, http.MethodGet, "/me", nil, hdr)
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := setupAuthEcho(actor.StaffRoles()...)

	sign := func(r actor.Role) string {
		tok, err := SignToken(testSecret, actor.Actor{ID: "u-" + string(r), Role: r}, time.Hour)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return "Bearer " + tok
	}

	for _, r := range actor.StaffRoles() {
		rec := doReq(t, e, http.MethodPost, "/staff", nil, map[string]string{echo.HeaderAuthorization: sign(r)})
		if rec.Code != http.StatusOK {
			t.Fatalf("%s => want 200, got %d", r, rec.Code)
		}
	}
	rec := doReq(t, e, http.MethodPost, "/staff", nil, map[string]string{echo.HeaderAuthorization: sign(actor.RoleCustomerService)})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer service => want 403, got %d", rec.Code)
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	e := echo.New()
	e.POST("/staff", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(actor.RoleAdmin))
	rec := doReq(t, e, http.MethodPost, "/staff", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}
