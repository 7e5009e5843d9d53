// Package config loads mgmtkit configuration from YAML files, .env files and
// environment variables using Viper and godotenv.
//
// # Usage
//
//	var cfg cli.Config
//	err := config.LoadConfig("mgmtctl", &cfg, config.WithEnvPrefix("MGMT"))
//
// Files are searched in the working directory and in the user config
// directory (e.g. ~/.config/mgmtctl/config.yml). Environment variables
// override file values: with prefix MGMT, MGMT_MANAGEMENT_DOMAIN sets
// management.domain.
package config
