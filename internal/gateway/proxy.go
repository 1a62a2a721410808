// Package gateway routes public path prefixes to backend services. It is a
// pure forwarder: it owns no data, terminates CORS, and maps upstream
// connection failures to 502 responses.
package gateway

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wheelio/config"
)

type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

type Gateway struct {
	routes []route
	log    *zap.Logger
}

// New builds the fixed routing table from the service URLs in config.
// Internal endpoints are deliberately absent: the gateway only exposes the
// public surface.
func New(cfg config.Config, log *zap.Logger) (*Gateway, error) {
	timeout := 30 * time.Second
	if cfg.Gateway.UpstreamTimeout != "" {
		parsed, err := time.ParseDuration(cfg.Gateway.UpstreamTimeout)
		if err != nil {
			return nil, err
		}
		timeout = parsed
	}

	table := []struct {
		prefix string
		target string
	}{
		{"/api/v1/auth", cfg.Services.UserURL},
		{"/api/v1/users", cfg.Services.UserURL},
		{"/api/v1/drivers", cfg.Services.UserURL},
		{"/api/v1/vehicles", cfg.Services.VehicleURL},
		{"/api/v1/bookings", cfg.Services.BookingURL},
		{"/api/v1/payments", cfg.Services.PaymentURL},
		{"/api/v1/damage-reports", cfg.Services.DamageURL},
		{"/api/v1/files", cfg.Services.FileURL},
	}

	g := &Gateway{log: log}
	for _, entry := range table {
		target, err := url.Parse(entry.target)
		if err != nil {
			return nil, err
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		proxy.Transport = &http.Transport{
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			ResponseHeaderTimeout: timeout,
		}

		prefix := entry.prefix
		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			log.Error("upstream unreachable",
				zap.String("path", r.URL.Path),
				zap.String("upstream", target.String()),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(gin.H{
				"error":   "upstream service unreachable",
				"path":    r.URL.Path,
				"details": err.Error(),
			})
		}

		g.routes = append(g.routes, route{prefix: prefix, proxy: proxy})
	}

	return g, nil
}

// match returns the proxy for the longest prefix matching the path.
func (g *Gateway) match(path string) *httputil.ReverseProxy {
	var best *httputil.ReverseProxy
	bestLen := -1
	for i := range g.routes {
		r := &g.routes[i]
		if len(r.prefix) > bestLen &&
			(path == r.prefix || strings.HasPrefix(path, r.prefix+"/")) {
			best = r.proxy
			bestLen = len(r.prefix)
		}
	}
	return best
}

// Router mounts the proxy into a gin engine with CORS and a health check.
func (g *Gateway) Router() *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if proxy := g.match(path); proxy != nil {
			proxy.ServeHTTP(c.Writer, c.Request)
			return
		}
		if strings.HasPrefix(path, "/api/v1") {
			c.JSON(http.StatusNotFound, gin.H{"error": "no route for path", "path": path})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
