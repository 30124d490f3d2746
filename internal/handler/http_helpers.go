package handler

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondMessageError uses the nested `{error: {message}}` shape of the public form endpoints.
func respondMessageError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": gin.H{"message": message}})
}

func respondInternalError(c *gin.Context, err error) {
	log.Printf("[http] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, http.StatusInternalServerError, "Internal Server Error")
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// queryFirst returns the first non-empty value among keys.
func queryFirst(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if value, ok := c.GetQuery(key); ok && value != "" {
			return value
		}
	}
	return ""
}

// parseLeadingInt reads an optional sign and leading decimal digits, ignoring what follows
// ("12abc" -> 12). Values without leading digits use fallback.
func parseLeadingInt(raw string, fallback int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}

	end := 0
	if trimmed[0] == '+' || trimmed[0] == '-' {
		end = 1
	}
	digitsStart := end
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return fallback
	}

	value, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return fallback
	}
	return value
}
