package transcribe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/whisper-asr-mcp/errors"
	"github.com/kbukum/whisper-asr-mcp/server"
)

// RoutePath is the REST mirror of the transcribe tool.
const RoutePath = "/api/v1/transcribe"

// Handler serves POST RoutePath. The body is Args as JSON; the response is
// the same Result envelope the tool returns.
func Handler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var args Args
		if err := c.ShouldBindJSON(&args); err != nil {
			server.RespondWithError(c, apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err))
			return
		}
		res, err := svc.Transcribe(c.Request.Context(), args)
		if err != nil {
			server.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// RegisterRoutes mounts the REST mirror on r.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.POST(RoutePath, Handler(svc))
}
