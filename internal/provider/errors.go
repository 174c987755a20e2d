package provider

import "errors"

// Provider error taxonomy. Authorization failures are terminal for the key
// that issued them; rate limits and other failures are transient.
var (
	ErrUnauthorized  = errors.New("provider rejected api key")
	ErrRateLimited   = errors.New("provider rate limited request")
	ErrKeysExhausted = errors.New("all provider api keys exhausted")
)
