// Package logger builds *slog.Logger instances for the account service.
//
// New decorates a text or JSON handler with ContextExtractor callbacks so
// request-scoped values (the request id in particular) are attached to every
// record without threading them through call sites. Attribute helpers such as
// AccountID and Error keep key names consistent across packages.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "accounts"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "account activated", logger.AccountID(id))
//
// Credentials never go through this package: callers log account ids, not
// passwords or tokens.
package logger
