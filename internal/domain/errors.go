package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrRemoteUnavailable  = errors.New("remote unavailable")
	ErrUnknownLeagueColor = errors.New("unknown league color")
	ErrInvalidRegion      = errors.New("invalid region")
	ErrInvalidRecent      = errors.New("invalid recent tracking value")
)
