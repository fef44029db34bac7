package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"loansaarthi-backend/internal/domain/actor"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorCtxKey = "actor"

// Claims: sub carries the staff user id, role one of actor.Role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type errBody struct {
	Error string `json:"error"`
}

// SignToken mints an HS256 token for a; ttl <= 0 means no expiry.
func SignToken(secret []byte, a actor.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(a.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  a.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseToken(secret []byte, raw string) (actor.Actor, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return actor.Actor{}, err
	}
	if !tok.Valid || claims.Subject == "" {
		return actor.Actor{}, errors.New("invalid token claims")
	}
	role, ok := actor.ParseRole(claims.Role)
	if !ok {
		return actor.Actor{}, errors.New("unknown role")
	}
	return actor.Actor{ID: claims.Subject, Role: role}, nil
}

// Auth validates the bearer token and stores the caller on the context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, errBody{"authorization is missing"})
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errBody{"expected 'Bearer <token>'"})
			}
			a, err := parseToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errBody{"invalid token"})
			}
			SetActor(c, a)
			return next(c)
		}
	}
}

// RequireRole must run after Auth.
func RequireRole(allowed ...actor.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errBody{"authorization is missing"})
			}
			for _, r := range allowed {
				if a.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errBody{"access denied: insufficient permissions"})
		}
	}
}

func SetActor(c echo.Context, a actor.Actor) { c.Set(actorCtxKey, a) }

func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorCtxKey).(actor.Actor)
	return a, ok
}
