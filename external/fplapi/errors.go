package fplapi

import crerr "github.com/cockroachdb/errors"

// Sentinels carried on client errors. Callers translate them into their
// own vocabulary; the originating upstream status stays recognizable
// through the chain.
var (
	ErrUnauthorized = crerr.New("fpl: unauthorized")
	ErrNotFound     = crerr.New("fpl: resource not found")
	ErrUnavailable  = crerr.New("fpl: provider unavailable")
)
