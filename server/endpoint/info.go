package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/whisper-asr-mcp/version"
)

var startTime = time.Now()

// ToolInfo describes an exposed MCP tool on the /info page.
type ToolInfo struct {
	Name    string   `json:"name"`
	Formats []string `json:"output_formats,omitempty"`
}

// Info reports the service name, build and uptime, and the MCP tools it
// serves.
func Info(serviceName string, tools ...ToolInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"is_dirty":   v.IsDirty,
			"tools":      tools,
			"uptime":     time.Since(startTime).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
