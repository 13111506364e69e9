package storage

import (
	"context"
	"sync"

	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"

	"github.com/google/uuid"
)

// Storage is the map-backed fallback used when no database is reachable
// and by the handler tests. It is safe for concurrent handlers.
type Storage struct {
	mu        sync.RWMutex
	persons   map[string]models.Person
	blogs     map[string]models.Blog
	users     map[string]models.User
	anecdotes map[string]models.Anecdote
}

func NewStorage() *Storage {
	return &Storage{
		persons:   make(map[string]models.Person),
		blogs:     make(map[string]models.Blog),
		users:     make(map[string]models.User),
		anecdotes: make(map[string]models.Anecdote),
	}
}

// SeedPersons loads the canonical demo phonebook entries.
func (s *Storage) SeedPersons() {
	seed := []models.Person{
		{Name: "Arto Hellas", Number: "040-123456"},
		{Name: "Ada Lovelace", Number: "39-44-5323523"},
		{Name: "Dan Abramov", Number: "12-43-234345"},
		{Name: "Mary Poppendieck", Number: "39-23-6423122"},
	}
	for _, p := range seed {
		_ = s.CreatePerson(context.Background(), &p)
	}
}

func (s *Storage) GetPersons(ctx context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	persons := []models.Person{}
	for _, p := range s.persons {
		persons = append(persons, p)
	}
	return persons, nil
}

func (s *Storage) GetPersonByID(ctx context.Context, id string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, exists := s.persons[id]
	if !exists {
		return nil, errors.ErrPersonNotFound
	}
	return &p, nil
}

func (s *Storage) GetPersonByName(ctx context.Context, name string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.persons {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, errors.ErrPersonNotFound
}

func (s *Storage) CreatePerson(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	person.ID = uuid.New().String()
	s.persons[person.ID] = *person
	return nil
}

func (s *Storage) UpdatePerson(ctx context.Context, id string, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[id]; !exists {
		return errors.ErrPersonNotFound
	}
	person.ID = id
	s.persons[id] = *person
	return nil
}

func (s *Storage) DeletePerson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.persons[id]; !exists {
		return errors.ErrPersonNotFound
	}
	delete(s.persons, id)
	return nil
}

func (s *Storage) CountPersons(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons), nil
}

func (s *Storage) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blogs := []models.Blog{}
	for _, b := range s.blogs {
		blogs = append(blogs, b)
	}
	return blogs, nil
}

func (s *Storage) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, exists := s.blogs[id]
	if !exists {
		return nil, errors.ErrBlogNotFound
	}
	return &b, nil
}

func (s *Storage) CreateBlog(ctx context.Context, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blog.ID = uuid.New().String()
	s.blogs[blog.ID] = *blog
	return nil
}

func (s *Storage) UpdateBlog(ctx context.Context, id string, blog *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blogs[id]; !exists {
		return errors.ErrBlogNotFound
	}
	blog.ID = id
	s.blogs[id] = *blog
	return nil
}

func (s *Storage) DeleteBlog(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blogs[id]; !exists {
		return errors.ErrBlogNotFound
	}
	delete(s.blogs, id)
	return nil
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return errors.ErrUsernameTaken
		}
	}
	user.ID = uuid.New().String()
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) GetUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := []models.User{}
	for _, u := range s.users {
		u.Blogs = s.blogIDsOf(u.ID)
		users = append(users, u)
	}
	return users, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, exists := s.users[id]
	if !exists {
		return nil, errors.ErrUserNotFound
	}
	u.Blogs = s.blogIDsOf(u.ID)
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u.Blogs = s.blogIDsOf(u.ID)
			return &u, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// blogIDsOf requires s.mu to be held.
func (s *Storage) blogIDsOf(userID string) []string {
	ids := []string{}
	for _, b := range s.blogs {
		if b.UserID == userID {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func (s *Storage) GetAnecdotes(ctx context.Context) ([]models.Anecdote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	anecdotes := []models.Anecdote{}
	for _, a := range s.anecdotes {
		anecdotes = append(anecdotes, a)
	}
	return anecdotes, nil
}

func (s *Storage) GetAnecdoteByID(ctx context.Context, id string) (*models.Anecdote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, exists := s.anecdotes[id]
	if !exists {
		return nil, errors.ErrAnecdoteNotFound
	}
	return &a, nil
}

func (s *Storage) CreateAnecdote(ctx context.Context, anecdote *models.Anecdote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	anecdote.ID = uuid.New().String()
	s.anecdotes[anecdote.ID] = *anecdote
	return nil
}

func (s *Storage) UpdateAnecdote(ctx context.Context, id string, anecdote *models.Anecdote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.anecdotes[id]; !exists {
		return errors.ErrAnecdoteNotFound
	}
	anecdote.ID = id
	s.anecdotes[id] = *anecdote
	return nil
}
