// Package envvar resolves environment-variable values that reference
// secrets.
//
// A Processor is the hook a host calls when it meets a secret reference in
// its configuration. References that fail to resolve are fatal unless their
// identifier is in the processor's ignore set, in which case the value
// resolves to the empty string.
//
//	p := envvar.NewProcessor(resolver,
//	    envvar.WithIgnore("optional/api-key"),
//	    envvar.WithLogger(logger),
//	)
//
//	password, err := p.GetEnv(ctx, "myapp/db,password")
//	dsn, err := p.Expand(ctx, "postgres://app:${aws:myapp/db,password}@db/app")
package envvar
