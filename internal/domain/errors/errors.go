package errors

import "errors"

var (
	ErrPersonNotFound     = errors.New("person not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrAnecdoteNotFound   = errors.New("anecdote not found")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidID          = errors.New("malformed id")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNameTaken          = errors.New("name must be unique")
	ErrUsernameTaken      = errors.New("username must be unique")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("only the creator may delete a blog")
	ErrBadRequest         = errors.New("bad request")
	ErrInternalServer     = errors.New("internal server error")
	ErrValidationFailed   = errors.New("validation failed")
	ErrDatabaseConnection = errors.New("database connection failed")

	ErrNameMissing     = errors.New("name missing")
	ErrNameTooShort    = errors.New("name must be at least 3 characters long")
	ErrNumberMissing   = errors.New("number missing")
	ErrInvalidNumber   = errors.New("number must be in format 09-1234556 or 040-22334455")
	ErrTitleMissing    = errors.New("title missing")
	ErrURLMissing      = errors.New("url missing")
	ErrInvalidUsername = errors.New("username must be at least 3 characters long")
	ErrInvalidPassword = errors.New("password must be at least 3 characters long")
	ErrContentMissing  = errors.New("content missing")

	ErrConfigFileReadFailed = errors.New("failed to read config file")
	ErrConfigParseFailed    = errors.New("failed to parse config file")
	ErrConfigInvalidFormat  = errors.New("invalid config value")
)
