// Package file persists configuration and the authenticated session to
// TOML files under the kbs directory. Both stores write owner-only
// files since they can carry tokens and API keys.
package file
