// Package errors provides the classified error primitives used across sitemigrate.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, validation, filesystem, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and error presentation for the CLI
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write failed").
//		WithContext("path", target).
//		Fatal().
//		Build()
package errors
