// Package config loads service configuration with Viper.
//
// Sources, lowest priority first: a config.yml found next to the binary's
// cmd directory (or given explicitly), a .env file, and the process
// environment. Env vars map onto nested keys by underscore, so
// SERVER_PORT sets server.port. Names that do not follow that shape are
// attached with WithEnvBinding.
package config
