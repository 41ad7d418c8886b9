// Package log builds folio's slog loggers.
//
// Every logger created here wraps its handler in SecureHandler, which masks
// values that must never end up in build output or CI logs:
//   - Authorization and Cookie headers
//   - GitHub tokens (ghp_, gho_, github_pat_ and friends), wherever they appear
//   - contact e-mail addresses logged under an "email" key
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, log.Options{Verbose: verbose})
//	logger.Info("fetching projects", "user", cfg.GitHub.Username)
package log
