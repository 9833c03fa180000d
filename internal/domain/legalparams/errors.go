package legalparams

import "errors"

var (
	ErrNoActiveVersion  = errors.New("no active legal parameter version")
	ErrVersionNotFound  = errors.New("legal parameter version not found")
	ErrNoVersionForDate = errors.New("no legal parameter version covers the requested date")
	ErrNoIndexAvailable = errors.New("no index value available at or before the requested date")
)
