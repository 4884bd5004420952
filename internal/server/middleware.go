package server

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const adminClaimsKey = "adminClaims"

// requireAdmin rejects requests without a valid admin JWT, minted by
// POST /api/admin/login.
func requireAdmin(auth *authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := auth.validateToken(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(adminClaimsKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// corsMiddleware allows the admin UI and any local client to call the
// API from a different origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type endpointMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

type performanceMetrics struct {
	mu              sync.RWMutex
	requestCount    int64
	totalDuration   time.Duration
	endpointMetrics map[string]*endpointMetrics
}

var globalMetrics = &performanceMetrics{
	endpointMetrics: make(map[string]*endpointMetrics),
}

// performanceMonitor times every request, logging slow ones and
// feeding GET /metrics.
func performanceMonitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start)
		if path != "/health" && !strings.HasSuffix(path, "/progress") {
			if duration > 200*time.Millisecond {
				log.Printf("[SLOW] %s %s - %v (status: %d)", c.Request.Method, path, duration, c.Writer.Status())
			}
			globalMetrics.record(path, duration)
		}
		c.Header("X-Response-Time", duration.String())
	}
}

func (pm *performanceMetrics) record(path string, duration time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.requestCount++
	pm.totalDuration += duration

	m, exists := pm.endpointMetrics[path]
	if !exists {
		m = &endpointMetrics{MinTime: duration, MaxTime: duration}
		pm.endpointMetrics[path] = m
	}
	m.Count++
	m.TotalTime += duration
	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

func metricsSnapshot() gin.H {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	endpoints := make(gin.H, len(globalMetrics.endpointMetrics))
	for path, m := range globalMetrics.endpointMetrics {
		avg := time.Duration(0)
		if m.Count > 0 {
			avg = m.TotalTime / time.Duration(m.Count)
		}
		endpoints[path] = gin.H{
			"count":  m.Count,
			"avg_ms": avg.Milliseconds(),
			"min_ms": m.MinTime.Milliseconds(),
			"max_ms": m.MaxTime.Milliseconds(),
		}
	}

	avg := time.Duration(0)
	if globalMetrics.requestCount > 0 {
		avg = globalMetrics.totalDuration / time.Duration(globalMetrics.requestCount)
	}
	return gin.H{
		"total_requests":  globalMetrics.requestCount,
		"avg_duration_ms": avg.Milliseconds(),
		"endpoints":       endpoints,
	}
}
