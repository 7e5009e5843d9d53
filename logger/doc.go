// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.New(&cfg, "mgmtctl").WithComponent("auth")
//	log.Debug("token refreshed", logger.Fields("expires_in", 86400))
package logger
