package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrMissingSecret      = errors.New("missing jwt secret")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("blog not found")
	ErrForbidden          = errors.New("not the author of this blog")
	ErrInternal           = errors.New("internal server error")
)
