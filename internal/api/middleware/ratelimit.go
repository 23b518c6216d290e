package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"blog_nest/internal/common"
)

const limiterMessage = "Too many login attempts from this IP, please try again after a 60 second pause"

// LoginLimiter is a fixed-window per-IP counter backed by Redis. A Redis
// outage fails open: locking every caller out of login is worse than briefly
// losing the limit.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

func NewLoginLimiter(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, limit: limit, window: window, logger: logger}
}

func (l *LoginLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr // RealIP middleware leaves bare addresses
		}
		key := "login_attempts:" + ip
		ctx := r.Context()

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
				l.logger.Warn("login limiter expire failed", zap.Error(err))
			}
		}

		if count > int64(l.limit) {
			if ttl, err := l.rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl/time.Second)))
			}
			common.RespondWithError(w, http.StatusTooManyRequests, limiterMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}
