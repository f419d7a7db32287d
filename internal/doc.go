// Package internal holds helpers shared across the winauth packages and not
// part of the public API.
package internal
