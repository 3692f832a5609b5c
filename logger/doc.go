// Package logger builds configured slog loggers through functional options.
//
// The factory defaults to production-safe settings (JSON output at Info
// level on stdout) and can be tuned per environment:
//
//	log := logger.New(
//	    logger.WithDevelopment("petlookup"),
//	)
//	log.Debug("starting")
//
// Invalid formats panic at construction time: logging misconfiguration
// should stop the program before it runs, not surface mid-request.
package logger
