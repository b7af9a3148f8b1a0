// Package logger builds *slog.Logger instances with functional options,
// attribute helpers, and attributes injected from context.Context.
//
// New selects slog.NewJSONHandler or slog.NewTextHandler from the configured
// Format and wraps it with LogHandlerDecorator, which runs every registered
// ContextExtractor before delegating a record. Request-scoped values such as
// the request id or tenant id therefore appear on every record logged with
// the request context, without threading them through call sites.
//
// # Usage
//
//	import "github.com/dmitrymomot/clinickit/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "clinic-api"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	v := sanitizer.SecurityCheck(input)
//	log.WarnContext(ctx, "threat detected",
//	    logger.Threats(v),
//	    logger.Field("patient.notes"),
//	)
//
// # Configuration
//
//   - WithEnvironment: per-environment defaults plus service/env attributes.
//   - WithFormat / WithTextFormatter / WithJSONFormatter: output format.
//   - WithLevel / ParseLevel: minimum level.
//   - WithAttr: static attributes.
//   - WithContextExtractors / WithContextValue: attributes from context.
//
// # Error Handling
//
// Error, Errors, Threats, RequestID and TenantID return an empty slog.Attr for
// zero input, which slog drops, so
//
//	log.Info("request inspected", logger.Error(err))
//
// needs no nil check.
package logger
