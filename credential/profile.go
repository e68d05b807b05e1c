package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the store key holding the signed-in user's profile.
const DefaultKey = "profile"

// ErrMalformedProfile is returned when the stored profile is not valid JSON.
var ErrMalformedProfile = errors.New("malformed profile record")

// Profile is the record persisted by the auth flow. Only AccessToken is read
// by the API client.
type Profile struct {
	AccessToken          string          `json:"accessToken"`
	RefreshToken         string          `json:"refreshToken,omitempty"`
	AccessTokenUpdatedAt string          `json:"accessTokenUpdatedAt,omitempty"`
	User                 json.RawMessage `json:"user,omitempty"`
}

// ProfileProvider reads the access token from a Profile stored under Key.
type ProfileProvider struct {
	Store Store
	Key   string // DefaultKey when empty
}

// NewProfileProvider returns a provider reading key from store.
func NewProfileProvider(store Store, key string) *ProfileProvider {
	return &ProfileProvider{Store: store, Key: key}
}

// AccessToken implements Provider.
func (p *ProfileProvider) AccessToken(ctx context.Context) (string, error) {
	profile, err := LoadProfile(ctx, p.Store, p.key())
	if err != nil || profile == nil {
		return "", err
	}
	return strings.TrimSpace(profile.AccessToken), nil
}

func (p *ProfileProvider) key() string {
	if p.Key == "" {
		return DefaultKey
	}
	return p.Key
}

// LoadProfile returns the profile under key, or (nil, nil) when none is stored.
func LoadProfile(ctx context.Context, store Store, key string) (*Profile, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
	}
	return &profile, nil
}

// SaveProfile writes profile under key.
func SaveProfile(ctx context.Context, store Store, key string, profile Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ClearProfile removes the profile under key. Removing an absent key is not an error.
func ClearProfile(ctx context.Context, store Store, key string) error {
	if err := store.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
