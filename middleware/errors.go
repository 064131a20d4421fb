package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/logger"
	"github.com/yourusername/invoice-api/utils"
)

// ErrorHandler is the single point translating taxonomy kinds into wire
// responses. Handlers and middleware report failures with c.Error; this
// middleware renders the last one as the uniform envelope. Anything not
// marked with a taxonomy kind is reported as a generic internal error so
// diagnostic detail never reaches the caller.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status := apierr.HTTPStatusFromErr(err)
		if status == http.StatusInternalServerError {
			log.Errorw("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.JSON(status, utils.Fail("unexpected error", nil))
			return
		}

		c.JSON(status, utils.Fail(apierr.DisplayMessage(err), apierr.Details(err)))
	}
}
