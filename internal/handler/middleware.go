package handler

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// bcrypt 只使用前 72 字节，更长的凭证直接拒绝
const maxHashedCredentialLength = 72

var errCredentialThrottled = errors.New("too many credential checks")

type adminCredential struct {
	token string
	hash  []byte
	// 限制 bcrypt 比较的频率
	limiter *rate.Limiter
}

func newAdminCredential(token, hash string) adminCredential {
	return adminCredential{
		token:   strings.TrimSpace(token),
		hash:    []byte(strings.TrimSpace(hash)),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 10),
	}
}

func (a adminCredential) configured() bool {
	return a.token != "" || len(a.hash) > 0
}

// verify checks the candidates against the plain token first, then runs at most one
// bcrypt comparison for the first usable candidate.
func (a adminCredential) verify(candidates ...string) (bool, error) {
	hashed := ""
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if a.token != "" && subtle.ConstantTimeCompare([]byte(candidate), []byte(a.token)) == 1 {
			return true, nil
		}
		if hashed == "" && len(candidate) <= maxHashedCredentialLength {
			hashed = candidate
		}
	}

	if len(a.hash) == 0 || hashed == "" {
		return false, nil
	}
	if a.limiter != nil && !a.limiter.Allow() {
		return false, errCredentialThrottled
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(hashed)) == nil, nil
}

// AdminRequired 校验 Authorization: Bearer <token> 或 X-API-KEY 请求头
// 未配置密钥时直接放行
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.auth.configured() {
			c.Next()
			return
		}

		bearer := ""
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			bearer = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		}

		ok, err := a.auth.verify(c.GetHeader("X-API-KEY"), bearer)
		if errors.Is(err, errCredentialThrottled) {
			respondError(c, http.StatusTooManyRequests, "Too Many Requests")
			c.Abort()
			return
		}
		if ok {
			c.Next()
			return
		}

		respondError(c, http.StatusUnauthorized, "Unauthorized")
		c.Abort()
	}
}

// RequestLogger tags every request with an id and logs method, path, status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("request_id", requestID)

		c.Next()

		log.Printf("[http] %s %s %s %d %dB %s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start),
		)
	}
}

// Recovery turns panics into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[http] panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		c.Abort()
	})
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Not Found")
}
