package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/anticipay/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled    bool     // whether the Swagger endpoint is served at all
	AllowedIPs []string // IP whitelist (CIDR notation supported, empty = allow all)
}

// SwaggerProtection returns a middleware that guards the Swagger endpoints.
// Disabled means every request gets a 404, so the docs are indistinguishable
// from a route that does not exist. With an IP whitelist configured, only
// listed addresses or CIDR ranges get through.
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	// Parse the whitelist once at startup
	var allowedNets []*net.IPNet
	var allowedIPs []net.IP
	for _, ipStr := range cfg.AllowedIPs {
		if strings.Contains(ipStr, "/") {
			_, network, err := net.ParseCIDR(ipStr)
			if err == nil {
				allowedNets = append(allowedNets, network)
			}
		} else {
			ip := net.ParseIP(ipStr)
			if ip != nil {
				allowedIPs = append(allowedIPs, ip)
			}
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse("API documentation is not available"))
			return
		}

		if len(cfg.AllowedIPs) > 0 {
			clientIP := getClientIP(c)
			if !isIPAllowed(clientIP, allowedIPs, allowedNets) {
				c.AbortWithStatusJSON(http.StatusForbidden,
					dto.NewErrorResponse("Access to API documentation is restricted"))
				return
			}
		}

		c.Next()
	}
}

// getClientIP extracts the client IP from the request. Gin's ClientIP
// already accounts for trusted proxies and forwarding headers.
func getClientIP(c *gin.Context) net.IP {
	clientIP := c.ClientIP()
	if clientIP != "" {
		ip := net.ParseIP(clientIP)
		if ip != nil {
			return ip
		}
	}

	// RemoteAddr might not have a port
	remoteAddr := c.Request.RemoteAddr
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	return net.ParseIP(host)
}

// isIPAllowed checks if the given IP is in the allowed list
func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}

	for _, allowedIP := range allowedIPs {
		if allowedIP.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}

	return false
}
