package middleware

import "github.com/gin-gonic/gin"

// SecurityConfig holds the security response headers. Empty values are not sent.
type SecurityConfig struct {
	FrameOptions          string
	ReferrerPolicy        string
	ContentSecurityPolicy string
}

// DefaultSecurityConfig suits the server-rendered dashboard: inline styles
// are allowed, scripts and cross-site form posts are not.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data:; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
	}
}

// Secure adds the default security headers.
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         cfg.FrameOptions,
		"Referrer-Policy":         cfg.ReferrerPolicy,
		"Content-Security-Policy": cfg.ContentSecurityPolicy,
	}
	for k, v := range headers {
		if v == "" {
			delete(headers, k)
		}
	}

	return func(c *gin.Context) {
		for k, v := range headers {
			c.Header(k, v)
		}
		c.Next()
	}
}
