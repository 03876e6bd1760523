package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Gauge reads a live integer value, such as transcriptions in flight.
type Gauge func() int

// Metrics reports runtime memory, goroutines and any named gauges.
func Metrics(gauges map[string]Gauge) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		body := gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"alloc_mb":       m.Alloc / 1024 / 1024,
				"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
				"sys_mb":         m.Sys / 1024 / 1024,
				"gc_runs":        m.NumGC,
			},
		}
		if len(gauges) > 0 {
			values := make(map[string]int, len(gauges))
			for name, g := range gauges {
				values[name] = g()
			}
			body["gauges"] = values
		}
		c.JSON(http.StatusOK, body)
	}
}
