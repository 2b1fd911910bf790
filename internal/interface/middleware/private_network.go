package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/linkshort/pkg/response"
)

// PrivateNetworkOnly rejects callers outside loopback and RFC 1918 / RFC 4193 ranges.
// Used in front of operational endpoints such as /metrics.
func PrivateNetworkOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := net.ParseIP(clientIP(c))
		if ip == nil || !(ip.IsLoopback() || ip.IsPrivate()) {
			response.Fail(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}
