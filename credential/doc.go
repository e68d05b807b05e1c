// Package credential supplies the bearer token attached to outbound API calls.
//
// A Provider is asked for the current token on every request. The usual
// provider is ProfileProvider, which reads the JSON "profile" record
// ({"accessToken": ...}) from a durable key-value Store: a JSON file, a SQLite
// database or an in-process map. The API client only reads the store; the
// auth flow (login/logout) writes it with SaveProfile and ClearProfile.
package credential
