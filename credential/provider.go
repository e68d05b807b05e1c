package credential

import "context"

// Provider returns the current access token. ("", nil) means no credential
// is available and the request goes out unauthenticated.
type Provider interface {
	AccessToken(ctx context.Context) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (string, error)

// AccessToken calls f.
func (f ProviderFunc) AccessToken(ctx context.Context) (string, error) { return f(ctx) }

// Static returns a provider that always yields token.
func Static(token string) Provider {
	return ProviderFunc(func(context.Context) (string, error) { return token, nil })
}

// None returns a provider that never yields a token.
func None() Provider {
	return Static("")
}
