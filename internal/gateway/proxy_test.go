package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wheelio/config"
)

// echoUpstream records the path and auth header of the last request it saw.
func echoUpstream(t *testing.T) (*httptest.Server, *http.Request) {
	t.Helper()
	var seen http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

// closeNotifyRecorder adds the CloseNotify method that gin's writer asserts
// on the underlying writer when ReverseProxy serves a request;
// httptest.ResponseRecorder does not implement it.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func newRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func gatewayConfig(userURL, vehicleURL string) config.Config {
	var cfg config.Config
	cfg.Services.UserURL = userURL
	cfg.Services.VehicleURL = vehicleURL
	cfg.Services.BookingURL = userURL
	cfg.Services.PaymentURL = userURL
	cfg.Services.DamageURL = userURL
	cfg.Services.FileURL = userURL
	cfg.Gateway.UpstreamTimeout = "5s"
	return cfg
}

func TestGatewayForwardsByPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userUpstream, userSeen := echoUpstream(t)
	vehicleUpstream, vehicleSeen := echoUpstream(t)

	gateway, err := New(gatewayConfig(userUpstream.URL, vehicleUpstream.URL), zap.NewNop())
	require.NoError(t, err)
	router := gateway.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/USR-1", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := newRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/users/USR-1", userSeen.URL.Path)
	assert.Equal(t, "Bearer token-123", userSeen.Header.Get("Authorization"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	rec = newRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/api/v1/vehicles", vehicleSeen.URL.Path)
}

func TestGatewayUnknownAPIPathIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	upstream, _ := echoUpstream(t)

	gateway, err := New(gatewayConfig(upstream.URL, upstream.URL), zap.NewNop())
	require.NoError(t, err)
	router := gateway.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nonsense", nil)
	rec := newRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/nonsense")
}

func TestGatewayDeadUpstreamIs502(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	alive, _ := echoUpstream(t)

	gateway, err := New(gatewayConfig(dead.URL, alive.URL), zap.NewNop())
	require.NoError(t, err)
	router := gateway.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := newRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream service unreachable", body["error"])
	assert.Equal(t, "/api/v1/users", body["path"])
	assert.NotEmpty(t, body["details"])
}

func TestGatewayHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	upstream, _ := echoUpstream(t)

	gateway, err := New(gatewayConfig(upstream.URL, upstream.URL), zap.NewNop())
	require.NoError(t, err)
	router := gateway.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := newRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
