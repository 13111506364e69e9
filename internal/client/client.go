// Package client is the JSON REST client the state-store thunks use to
// talk to the phonebook, bloglist and anecdote servers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fullstack/internal/domain/models"
)

// APIError carries the status code and the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) GetPersons(ctx context.Context) ([]models.Person, error) {
	var persons []models.Person
	if err := c.do(ctx, http.MethodGet, "/api/persons", nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *Client) CreatePerson(ctx context.Context, name, number string) (*models.Person, error) {
	person := &models.Person{}
	req := models.CreatePersonRequest{Name: name, Number: number}
	if err := c.do(ctx, http.MethodPost, "/api/persons", req, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id string, person models.Person) (*models.Person, error) {
	updated := &models.Person{}
	req := models.UpdatePersonRequest{Name: person.Name, Number: person.Number}
	if err := c.do(ctx, http.MethodPut, "/api/persons/"+id, req, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeletePerson(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/persons/"+id, nil, nil)
}

func (c *Client) GetAnecdotes(ctx context.Context) ([]models.Anecdote, error) {
	var anecdotes []models.Anecdote
	if err := c.do(ctx, http.MethodGet, "/api/anecdotes", nil, &anecdotes); err != nil {
		return nil, err
	}
	return anecdotes, nil
}

func (c *Client) CreateAnecdote(ctx context.Context, content string) (*models.Anecdote, error) {
	anecdote := &models.Anecdote{}
	req := models.CreateAnecdoteRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/anecdotes", req, anecdote); err != nil {
		return nil, err
	}
	return anecdote, nil
}

func (c *Client) UpdateAnecdote(ctx context.Context, id string, anecdote models.Anecdote) (*models.Anecdote, error) {
	updated := &models.Anecdote{}
	if err := c.do(ctx, http.MethodPut, "/api/anecdotes/"+id, anecdote, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := c.do(ctx, http.MethodGet, "/api/blogs", nil, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (c *Client) CreateBlog(ctx context.Context, blog models.CreateBlogRequest) (*models.Blog, error) {
	created := &models.Blog{}
	if err := c.do(ctx, http.MethodPost, "/api/blogs", blog, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	resp := &models.LoginResponse{}
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", req, resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp, nil
}
