package entity

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUniqueConstraint = errors.New("unique constraint violated")
	ErrNoAccess         = errors.New("no access")
	ErrValueMissing     = errors.New("value missing")
)
