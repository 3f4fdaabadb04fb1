package notification

import "context"

type managerContextKey struct{}

// WithContext adds a manager to the context
func WithContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerContextKey{}, m)
}

// FromContext retrieves a manager from the context
func FromContext(ctx context.Context) (*Manager, bool) {
	m, ok := ctx.Value(managerContextKey{}).(*Manager)
	return m, ok && m != nil
}

// MustFromContext retrieves a manager from the context or panics
func MustFromContext(ctx context.Context) *Manager {
	m, ok := FromContext(ctx)
	if !ok {
		panic("notification: manager not found in context")
	}
	return m
}
