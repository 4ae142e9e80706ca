package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the caller address. Proxy headers win when they carry a
// parseable IP; X-Forwarded-For may list several hops and the first is the client.
func getClientIP(c *gin.Context) string {
	forwarded, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
	for _, candidate := range []string{forwarded, c.GetHeader("X-Real-IP")} {
		if ip := net.ParseIP(strings.TrimSpace(candidate)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
