// Package ctxutil carries per-request state through context.Context.
package ctxutil

import "context"

type requestKey struct{}

// Request is created once at the edge of the HTTP stack and filled in as the
// request moves through middleware. UserID stays empty until the caller is
// authenticated.
type Request struct {
	ID       string
	TraceID  string
	ClientIP string
	UserID   string
}

func With(ctx context.Context, r *Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// From returns the request state, or nil outside an HTTP request.
func From(ctx context.Context) *Request {
	r, _ := ctx.Value(requestKey{}).(*Request)
	return r
}

// WithUser records the authenticated user. It updates the existing request
// state in place so middleware that ran earlier sees it after c.Next().
func WithUser(ctx context.Context, userID string) context.Context {
	if r := From(ctx); r != nil {
		r.UserID = userID
		return ctx
	}
	return With(ctx, &Request{UserID: userID})
}

// UserID returns the authenticated user id, or "".
func UserID(ctx context.Context) string {
	if r := From(ctx); r != nil {
		return r.UserID
	}
	return ""
}
