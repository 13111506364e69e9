package models

import "regexp"

// Person is a phonebook entry. Number format: 2-3 digit prefix, then one
// or more dash-separated digit groups, at least 8 characters in total,
// e.g. 040-22334455 or 39-44-5323523.
type Person struct {
	ID     string `json:"id" validate:"omitempty,uuid"`
	Name   string `json:"name" validate:"required,min=3"`
	Number string `json:"number" validate:"required,min=8"`
}

var numberFormat = regexp.MustCompile(`^\d{2,3}-\d+(?:-\d+)*$`)

func ValidNumber(number string) bool {
	return len(number) >= 8 && numberFormat.MatchString(number)
}

type CreatePersonRequest struct {
	Name   string `json:"name" validate:"required,min=3"`
	Number string `json:"number" validate:"required,min=8"`
}

type UpdatePersonRequest struct {
	Name   string `json:"name" validate:"required,min=3"`
	Number string `json:"number" validate:"required,min=8"`
}

type Blog struct {
	ID     string `json:"id" validate:"omitempty,uuid"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  int    `json:"likes"`
	UserID string `json:"user"`
}

type CreateBlogRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  int    `json:"likes" validate:"omitempty,min=0"`
}

type UpdateBlogRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author"`
	URL    string `json:"url" validate:"required"`
	Likes  int    `json:"likes" validate:"omitempty,min=0"`
}

// User carries only the bcrypt hash; the hash is never serialized.
type User struct {
	ID           string   `json:"id" validate:"omitempty,uuid"`
	Username     string   `json:"username" validate:"required,min=3"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Blogs        []string `json:"blogs"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=3"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Anecdote struct {
	ID      string `json:"id" validate:"omitempty,uuid"`
	Content string `json:"content" validate:"required"`
	Votes   int    `json:"votes"`
}

type CreateAnecdoteRequest struct {
	Content string `json:"content" validate:"required"`
}

// Notification is client-side only, never persisted.
type Notification struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
