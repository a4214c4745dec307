package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	settingusecases "github.com/quiniela-inc/quiniela/internal/application/setting/usecases"
	"github.com/quiniela-inc/quiniela/internal/infrastructure/ratelimit"
	"github.com/quiniela-inc/quiniela/internal/shared/constants"
	"github.com/quiniela-inc/quiniela/internal/shared/logger"
	"github.com/quiniela-inc/quiniela/internal/shared/utils"
)

// RegistrationRateLimit throttles registration attempts per client IP and
// pool. The window and ceiling come from the resolved registration_rate_limit
// setting, so a tenant or pool override takes effect without a restart.
// Without a limiter backend the middleware passes everything through.
func RegistrationRateLimit(limiter ratelimit.RateLimiter, values *settingusecases.Values, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		tenantSID := c.GetString(constants.ContextKeyTenantSID)
		poolSID := c.Param("poolSid")
		rl := values.RegistrationRateLimit(c.Request.Context(), tenantSID, poolSID)

		window := ratelimit.Window{
			Duration: time.Duration(rl.WindowSec) * time.Second,
			Max:      rl.Max,
		}
		key := fmt.Sprintf("register:%s:%s", poolSID, c.ClientIP())

		allowed, err := limiter.Allow(key, window)
		if err != nil {
			// The limiter is protective, not load-bearing: a broken backend
			// must not block registrations.
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many registration attempts, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
