// Package logger wraps zap with a process-wide sugared logger and an atomic level.
// Loggers travel through context.Context so each component (gateway, cache, engine)
// can log under its own name with request-scoped key-value pairs attached.
package logger
