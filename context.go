package goForge

import "context"

type operatorContextKey struct{}
type targetContextKey struct{}
type sourceTagContextKey struct{}

// WithOperator attaches the analyst or automation identity performing the
// call. The Engine copies it into every audit event it emits for ctx.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, operator)
}

// WithTarget attaches an engagement target label (host, endpoint, ticket)
// to ctx for audit correlation.
func WithTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, targetContextKey{}, target)
}

// WithSourceTag attaches a wordlist or token provenance label to ctx. Crack
// audit events and vault records carry it so recoveries stay attributable.
func WithSourceTag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, sourceTagContextKey{}, tag)
}

func operatorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	operator, _ := ctx.Value(operatorContextKey{}).(string)
	return operator
}

func targetFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	target, _ := ctx.Value(targetContextKey{}).(string)
	return target
}

func sourceTagFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	tag, _ := ctx.Value(sourceTagContextKey{}).(string)
	return tag
}
