// Package api exposes the dispatcher over HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/orderdesk/internal/dispatch"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Dispatcher *dispatch.Dispatcher
	Port       int
	APIKey     string // empty disables the X-API-Key check
	Out        io.Writer
}

// Start launches the API HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Dispatcher == nil {
		return fmt.Errorf("api: dispatcher is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8090
	}

	router := newRouter(opts.Dispatcher, opts.APIKey)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "API listening at http://localhost:%d\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// newRouter builds the gin engine with all routes registered.
func newRouter(d *dispatch.Dispatcher, apiKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", handleHealthz)

	authed := router.Group("/", requireAPIKey(apiKey))
	authed.POST("/chat", handleChat(d))

	return router
}

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// chatRequest is the POST /chat body.
type chatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func handleChat(d *dispatch.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and message are required"})
			return
		}

		resp, err := d.Handle(req.UserID, req.Message)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// requireAPIKey rejects requests whose X-API-Key header does not match.
// An empty configured key disables the check.
func requireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != "" && c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		c.Next()
	}
}
