// Package devmode provides shared configuration for development mode across client and devserver.
package devmode

// AccessToken is the shared development bearer token. The devserver maps it
// to UserID without signature checks. Never use it against a real backend.
const AccessToken = "LOCAL_DEV_MODE_NOT_FOR_PRODUCTION"

// UserID is the user the development token authenticates as.
const UserID = "dev-user"

// SigningSecret signs the HS256 tokens minted by the devserver.
const SigningSecret = "socialecho-dev-signing-secret"
