package middleware

import (
	stderrors "errors"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dietdesk/dietdesk/internal/shared/constants"
	"github.com/dietdesk/dietdesk/internal/shared/errors"
	"github.com/dietdesk/dietdesk/internal/shared/logger"
	"github.com/dietdesk/dietdesk/internal/shared/utils"
)

func Recovery(log logger.Interface) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if isBrokenConnection(recovered) {
			log.Warnw("connection broken during request",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", recovered)
			c.Abort()
			return
		}

		log.Errorw("panic recovered",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"headers", maskedHeaders(c),
			"error", recovered,
			"stack", string(debug.Stack()))

		utils.ErrorResponseWithError(c, errors.NewInternalError("internal server error"))
		c.Abort()
	})
}

// maskedHeaders dumps the request head with credentials blanked.
func maskedHeaders(c *gin.Context) []string {
	dump, _ := httputil.DumpRequest(c.Request, false)
	headers := strings.Split(string(dump), "\r\n")
	for i, header := range headers {
		name, _, found := strings.Cut(header, ":")
		if !found {
			continue
		}
		if strings.EqualFold(name, constants.HeaderAuthorization) || strings.EqualFold(name, constants.HeaderStripeSignature) {
			headers[i] = name + ": *"
		}
	}
	return headers
}

func isBrokenConnection(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !stderrors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !stderrors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}

// ErrorHandler renders the last c.Error for handlers that did not write a response.
func ErrorHandler(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if !errors.IsAppError(err) {
			log.Errorw("handler error occurred",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"error", err)
		}
		if !c.Writer.Written() {
			utils.ErrorResponseWithError(c, err)
		}
	}
}
