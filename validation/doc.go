// Package validation validates tool arguments and configuration.
//
// Struct validation uses go-playground/validator tags and reports json
// field names. The builder Validator covers checks that read better as code.
package validation
