// admin.go - privacy-conscious visit log and admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/sitelog"
)

const adminCookie = "admin_token"

// Initialize admin system with privacy considerations
func (a *app) initAdmin() {
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.adminToken)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

	// Clean up old visitor data for privacy compliance (run in background)
	go a.cleanupVisitors()
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

func (a *app) cleanupVisitors() {
	n, err := a.store.Cleanup(context.Background(), sitelog.DefaultRetention)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records past retention", n)
	}
}

func constantEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Middleware to check admin authentication
func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !constantEqual(token, a.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func (a *app) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for static files, admin pages and streams
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") ||
			strings.HasPrefix(path, "/hero/") ||
			path == "/motion.css" {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			if err := a.store.RecordVisit(context.Background(), ip, ua, path); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

// Setup all admin routes
func setupAdminRoutes(r *gin.Engine, a *app) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":   "Privacy Policy",
			"summary": PrivacySummary,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if constantEqual(username, a.cfg.AdminUsername) && constantEqual(password, a.cfg.AdminPassword) {
			// Secure cookie (24 hours)
			c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.store.HashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", a.store.HashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.store.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":  stats,
			"apiURL": a.api.BaseURL(),
		})
	})

	// Admin API endpoints for HTMX/AJAX
	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.store.Cleanup(c.Request.Context(), sitelog.DefaultRetention)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", a.store.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
