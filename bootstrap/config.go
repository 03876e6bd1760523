package bootstrap

import (
	"github.com/kbukum/whisper-asr-mcp/config"
)

// Config is the constraint for application config types. Any struct that
// embeds config.ServiceConfig by value satisfies it through promoted
// methods, as long as it is used by pointer.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
