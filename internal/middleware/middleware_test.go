package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/bingo-server/internal/config"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	os.Exit(m.Run())
}

func TestWrapOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), tag("inner"), tag("outer"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestLoggingRecordsStatusAndRequestId(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var seen string
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestId(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "handled request", last.Message)
	assert.Equal(t, http.StatusTeapot, last.Data["status_code"])
	assert.Equal(t, seen, last.Data["request_id"])
}

func TestLoggingKeepsIncomingRequestId(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
}

func TestAuth(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cookies := config.Cookies{SameSite: http.SameSiteLaxMode}.
		WithJWT(config.NewJWTWithKeys(key, &key.PublicKey, time.Hour))

	logger, _ := test.NewNullLogger()
	var claims *config.PlayerClaims
	var loggedIn bool
	h := Auth(logger, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, loggedIn = PlayerClaims(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, loggedIn)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, config.NewPlayerClaims(3, "bob")))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, loggedIn)
	assert.Equal(t, int64(3), claims.PlayerId)
	assert.Equal(t, "bob", claims.Username)
}
