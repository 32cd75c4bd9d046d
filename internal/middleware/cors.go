package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the single page app origins to call the API with a bearer token.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader, SequenceHeader, SessionHeader},
		ExposeHeaders:    []string{RequestIDHeader, SequenceHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

const (
	// SequenceHeader carries the client's request sequence number for report views.
	SequenceHeader = "X-Request-Seq"
	// SessionHeader identifies one client tab so that sequences from
	// different tabs do not supersede each other.
	SessionHeader = "X-Client-Session"
)
