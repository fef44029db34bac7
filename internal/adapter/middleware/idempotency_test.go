package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loansaarthi-backend/internal/domain/actor"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

var testSecret = []byte("test-secret")

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// helper: new Echo with auth + idempotency and a simple route
func setupEcho(rdb redis.Cmdable, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Auth(testSecret), IdempotencyMiddleware(rdb, ttl, discardLogger()))
	e.POST("/loans", handler)
	e.GET("/loans", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func bearer(t *testing.T, actorID string) string {
	t.Helper()
	tok, err := SignToken(testSecret, actor.Actor{ID: actorID, Role: actor.RoleLoanOfficer}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + tok
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

// counting handler to exercise respRecorder capture & saveFinal
func countingHandler(calls *int, code int) echo.HandlerFunc {
	return func(c echo.Context) error {
		*calls++
		return c.JSON(code, map[string]any{"call": *calls})
	}
}

func Test_BypassOnGET(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/loans", nil, map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "not-a-valid-key",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("GET must not touch the store, keys=%v", mr.Keys())
	}
}

func Test_NoKey_PassesThrough(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, countingHandler(&calls, http.StatusCreated))

	h := map[string]string{echo.HeaderAuthorization: bearer(t, "staff-1")}
	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), h)
		if rec.Code != http.StatusCreated {
			t.Fatalf("want 201, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("handler should run for every keyless request, ran %d", calls)
	}
}

func Test_InvalidKey_Returns400(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, time.Minute, countingHandler(new(int), http.StatusCreated))

	rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "NOT-VALID",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid key => want 400, got %d", rec.Code)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))

	h := map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
	}

	rec1 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]any{"loan_amount": "5000"}), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// Same key & body -> replay stored response
	rec2 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]any{"loan_amount": "5000"}), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if rec2.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatal("replay should be flagged")
	}
	if calls != 1 {
		t.Fatalf("handler should run once, ran %d", calls)
	}
}

func Test_SameKey_DifferentActor_IsIndependent(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusCreated))

	key := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	for _, who := range []string{"staff-1", "staff-2"} {
		rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), map[string]string{
			echo.HeaderAuthorization: bearer(t, who),
			HeaderIdempotencyKey:     key,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("%s => want 201, got %d", who, rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("each actor should reach the handler, calls=%d", calls)
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int), http.StatusCreated))

	reqKey := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	body := []byte(`{"x":1}`)

	// Seed provisional "in-progress" entry (so SetNX will fail and loadEntry sees InProgress=true)
	key := buildKey(http.MethodPost, "/loans", "staff-1", reqKey)
	entry := idempEntry{
		InProgress: true,
		BodySHA256: bodyHash(body),
		Key:        reqKey,
		CreatedAt:  time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader(body), map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     reqKey,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameKey_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, countingHandler(new(int), http.StatusCreated))

	h := map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	if rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":1}`)), h); rec.Code != http.StatusCreated {
		t.Fatalf("first => want 201, got %d", rec.Code)
	}
	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":2}`)), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same key => want 409, got %d", rec.Code)
	}
}

func Test_ServerError_NotCached(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, countingHandler(&calls, http.StatusInternalServerError))

	h := map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("want 500, got %d", rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("5xx must be retryable, handler ran %d times", calls)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("no entry should remain, keys=%v", mr.Keys())
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	// closed address → SetNX error
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	e := setupEcho(rdb, time.Minute, countingHandler(new(int), http.StatusCreated))

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), map[string]string{
		echo.HeaderAuthorization: bearer(t, "staff-1"),
		HeaderIdempotencyKey:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
