package auth

import "errors"

var (
	NotAuthenticatedErr = errors.New("no authenticated session")
	SessionExpiredErr   = errors.New("session expired")
)
