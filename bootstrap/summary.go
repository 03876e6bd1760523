package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/whisper-asr-mcp/component"
)

// ToolInfo is an MCP tool listed in the summary.
type ToolInfo struct {
	Name    string
	Details string
}

// Summary prints what the service started with: components, MCP tools,
// routes and live health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	tools           []ToolInfo
	w               io.Writer
}

// NewSummary creates a summary that prints to w.
func NewSummary(serviceName, version string, w io.Writer) *Summary {
	return &Summary{serviceName: serviceName, version: version, w: w}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackTool records an exposed MCP tool.
func (s *Summary) TrackTool(name, details string) {
	s.tools = append(s.tools, ToolInfo{Name: name, Details: details})
}

// Display prints the summary. Components describe themselves through
// component.Describable; route lists come from component.RouteProvider.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	fmt.Fprintf(s.w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())

	var comps []component.Component
	if registry != nil {
		comps = registry.All()
	}

	if len(comps) > 0 {
		fmt.Fprintf(s.w, "\nComponents\n")
		for i, c := range comps {
			d := component.Description{Name: c.Name()}
			if desc, ok := c.(component.Describable); ok {
				d = desc.Describe()
				if d.Name == "" {
					d.Name = c.Name()
				}
			}
			line := d.Name
			if d.Type != "" {
				line += " [" + d.Type + "]"
			}
			if d.Details != "" {
				line += ": " + d.Details
			}
			fmt.Fprintf(s.w, "   %s %s\n", branch(i, len(comps)), line)
		}
	} else {
		fmt.Fprintf(s.w, "\n   └── No components registered\n")
	}

	if len(s.tools) > 0 {
		fmt.Fprintf(s.w, "\nMCP Tools\n")
		for i, t := range s.tools {
			fmt.Fprintf(s.w, "   %s %s (%s)\n", branch(i, len(s.tools)), t.Name, t.Details)
		}
	}

	var routes []component.Route
	for _, c := range comps {
		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}
	if len(routes) > 0 {
		fmt.Fprintf(s.w, "\nRoutes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(s.w, "   %s %-7s %s -> %s\n", branch(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	if registry != nil {
		reports := registry.HealthAll(ctx)
		if len(reports) > 0 {
			healthy := 0
			fmt.Fprintf(s.w, "\nHealth\n")
			for i, h := range reports {
				msg := ""
				if h.Message != "" {
					msg = ": " + h.Message
				}
				fmt.Fprintf(s.w, "   %s %s %s %s%s\n", branch(i, len(reports)), healthMark(h.Status), h.Name, h.Status, msg)
				if h.Status == component.StatusHealthy {
					healthy++
				}
			}
			fmt.Fprintf(s.w, "\n%d/%d components healthy\n", healthy, len(reports))
		}
	}
	fmt.Fprintln(s.w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthMark(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
