// Package validation validates configuration and command input.
//
// Struct tag validation uses go-playground/validator; field names in errors
// follow the mapstructure (or json) tag so they match config keys:
//
//	type Config struct {
//	    Domain string `mapstructure:"domain" validate:"required_without=BaseURL,omitempty,hostname"`
//	}
//	err := validation.Validate(cfg)
//
// Programmatic validation collects errors fluently:
//
//	err := validation.New().
//	    Required("user_id", id).
//	    OneOf("output", output, []string{"json", "yaml"}).
//	    Err()
package validation
