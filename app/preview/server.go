// Package preview serves an already-computed digest over HTTP so the
// rendered output can be inspected before anything is emailed.
package preview

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/presswatch/presswatch/app/digest"
)

// NewServer builds the preview engine. The digest is computed before the
// server starts; handlers only read it.
func NewServer(d *digest.Digest, htmlBody, opmlBody, version string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/digest", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, htmlBody)
	})

	r.GET("/digest.opml", func(c *gin.Context) {
		c.Header("Content-Type", "text/x-opml; charset=utf-8")
		c.String(http.StatusOK, opmlBody)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"generated_at": d.GeneratedAt.Format(time.RFC3339),
			"clients":      len(d.ItemsByClient),
			"items":        d.TotalItems(),
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "PressWatch",
			"version": version,
			"endpoints": map[string]string{
				"digest": "/digest",
				"opml":   "/digest.opml",
				"health": "/health",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r
}
