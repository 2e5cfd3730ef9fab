// Package logging provides structured logging configuration for regsim.
//
// It wraps log/slog so that every component logs consistently. Components
// accept a *slog.Logger in their constructor or via a setter; when no
// logger is supplied they fall back to logging.Nop().
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("simulator started", "port", 50105)
package logging
