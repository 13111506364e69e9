package db

import (
	"context"
	stderrors "errors"
	"time"

	"fullstack/internal/domain/errors"
	"fullstack/internal/domain/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

const queryTimeout = 15 * time.Second

type Storage struct {
	conn *pgx.Conn
	log  zerolog.Logger

	prepCreatePerson      string
	prepGetPersonByID     string
	prepGetPersonByName   string
	prepGetPersons        string
	prepUpdatePerson      string
	prepDeletePerson      string
	prepCountPersons      string
	prepCreateBlog        string
	prepGetBlogByID       string
	prepGetBlogs          string
	prepUpdateBlog        string
	prepDeleteBlog        string
	prepCreateUser        string
	prepGetUsers          string
	prepGetUserByID       string
	prepGetUserByUsername string
	prepGetUserBlogIDs    string
	prepCreateAnecdote    string
	prepGetAnecdoteByID   string
	prepGetAnecdotes      string
	prepUpdateAnecdote    string
}

func NewStorage(connStr string, log zerolog.Logger) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return nil, errors.ErrDatabaseConnection
	}

	s := newStatements()
	s.conn = conn
	s.log = log
	log.Info().Msg("database connection established")
	return s, nil
}

// newStatements fills in the SQL behind every prepared statement. The
// blog reads cast user_id to text: coalescing the uuid column against a
// bare '' fails parse analysis on Prepare.
func newStatements() *Storage {
	return &Storage{
		prepCreatePerson:      `INSERT INTO persons (id, name, number) VALUES ($1, $2, $3)`,
		prepGetPersonByID:     `SELECT id, name, number FROM persons WHERE id = $1`,
		prepGetPersonByName:   `SELECT id, name, number FROM persons WHERE name = $1`,
		prepGetPersons:        `SELECT id, name, number FROM persons`,
		prepUpdatePerson:      `UPDATE persons SET name = $1, number = $2 WHERE id = $3`,
		prepDeletePerson:      `DELETE FROM persons WHERE id = $1`,
		prepCountPersons:      `SELECT count(*) FROM persons`,
		prepCreateBlog:        `INSERT INTO blogs (id, title, author, url, likes, user_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		prepGetBlogByID:       `SELECT id, title, author, url, likes, coalesce(user_id::text, '') FROM blogs WHERE id = $1`,
		prepGetBlogs:          `SELECT id, title, author, url, likes, coalesce(user_id::text, '') FROM blogs`,
		prepUpdateBlog:        `UPDATE blogs SET title = $1, author = $2, url = $3, likes = $4 WHERE id = $5`,
		prepDeleteBlog:        `DELETE FROM blogs WHERE id = $1`,
		prepCreateUser:        `INSERT INTO users (id, username, name, password_hash) VALUES ($1, $2, $3, $4)`,
		prepGetUsers:          `SELECT id, username, name, password_hash FROM users`,
		prepGetUserByID:       `SELECT id, username, name, password_hash FROM users WHERE id = $1`,
		prepGetUserByUsername: `SELECT id, username, name, password_hash FROM users WHERE username = $1`,
		prepGetUserBlogIDs:    `SELECT id FROM blogs WHERE user_id = $1`,
		prepCreateAnecdote:    `INSERT INTO anecdotes (id, content, votes) VALUES ($1, $2, $3)`,
		prepGetAnecdoteByID:   `SELECT id, content, votes FROM anecdotes WHERE id = $1`,
		prepGetAnecdotes:      `SELECT id, content, votes FROM anecdotes`,
		prepUpdateAnecdote:    `UPDATE anecdotes SET content = $1, votes = $2 WHERE id = $3`,
	}
}

func (s *Storage) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func (s *Storage) CreatePerson(ctx context.Context, person *models.Person) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	person.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_person", s.prepCreatePerson)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare create person")
		return err
	}
	if _, err = s.conn.Exec(ctx, stmt.Name, person.ID, person.Name, person.Number); err != nil {
		s.log.Error().Err(err).Str("name", person.Name).Msg("failed to create person")
		if isUniqueViolation(err) {
			return errors.ErrNameTaken
		}
		return err
	}
	return nil
}

func (s *Storage) GetPersonByID(ctx context.Context, id string) (*models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_person_by_id", s.prepGetPersonByID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get person by id")
		return nil, err
	}
	person := &models.Person{}
	row := s.conn.QueryRow(ctx, stmt.Name, id)
	if err := row.Scan(&person.ID, &person.Name, &person.Number); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrPersonNotFound
		}
		s.log.Error().Err(err).Str("id", id).Msg("failed to get person")
		return nil, err
	}
	return person, nil
}

func (s *Storage) GetPersonByName(ctx context.Context, name string) (*models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_person_by_name", s.prepGetPersonByName)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get person by name")
		return nil, err
	}
	person := &models.Person{}
	row := s.conn.QueryRow(ctx, stmt.Name, name)
	if err := row.Scan(&person.ID, &person.Name, &person.Number); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrPersonNotFound
		}
		s.log.Error().Err(err).Str("name", name).Msg("failed to get person by name")
		return nil, err
	}
	return person, nil
}

func (s *Storage) GetPersons(ctx context.Context) ([]models.Person, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_persons", s.prepGetPersons)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get persons")
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to query persons")
		return nil, err
	}
	defer rows.Close()

	persons := []models.Person{}
	for rows.Next() {
		p := models.Person{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Number); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *Storage) UpdatePerson(ctx context.Context, id string, person *models.Person) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "update_person", s.prepUpdatePerson)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare update person")
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, person.Name, person.Number, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update person")
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrPersonNotFound
	}
	person.ID = id
	return nil
}

func (s *Storage) DeletePerson(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "delete_person", s.prepDeletePerson)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare delete person")
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete person")
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrPersonNotFound
	}
	return nil
}

func (s *Storage) CountPersons(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "count_persons", s.prepCountPersons)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare count persons")
		return 0, err
	}
	var count int
	if err := s.conn.QueryRow(ctx, stmt.Name).Scan(&count); err != nil {
		s.log.Error().Err(err).Msg("failed to count persons")
		return 0, err
	}
	return count, nil
}

func (s *Storage) CreateBlog(ctx context.Context, blog *models.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	blog.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_blog", s.prepCreateBlog)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare create blog")
		return err
	}
	var userID any
	if blog.UserID != "" {
		userID = blog.UserID
	}
	if _, err = s.conn.Exec(ctx, stmt.Name, blog.ID, blog.Title, blog.Author, blog.URL, blog.Likes, userID); err != nil {
		s.log.Error().Err(err).Msg("failed to create blog")
		return err
	}
	return nil
}

func (s *Storage) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_blog_by_id", s.prepGetBlogByID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get blog by id")
		return nil, err
	}
	blog := &models.Blog{}
	row := s.conn.QueryRow(ctx, stmt.Name, id)
	if err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrBlogNotFound
		}
		s.log.Error().Err(err).Str("id", id).Msg("failed to get blog")
		return nil, err
	}
	return blog, nil
}

func (s *Storage) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_blogs", s.prepGetBlogs)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get blogs")
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to query blogs")
		return nil, err
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		b := models.Blog{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

func (s *Storage) UpdateBlog(ctx context.Context, id string, blog *models.Blog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "update_blog", s.prepUpdateBlog)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare update blog")
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, blog.Title, blog.Author, blog.URL, blog.Likes, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update blog")
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrBlogNotFound
	}
	blog.ID = id
	return nil
}

func (s *Storage) DeleteBlog(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "delete_blog", s.prepDeleteBlog)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare delete blog")
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to delete blog")
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrBlogNotFound
	}
	return nil
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	user.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_user", s.prepCreateUser)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare create user")
		return err
	}
	if _, err = s.conn.Exec(ctx, stmt.Name, user.ID, user.Username, user.Name, user.PasswordHash); err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("failed to create user")
		if isUniqueViolation(err) {
			return errors.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *Storage) GetUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_users", s.prepGetUsers)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get users")
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to query users")
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u := models.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range users {
		blogs, err := s.userBlogIDs(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Blogs = blogs
	}
	return users, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_id", s.prepGetUserByID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get user by id")
		return nil, err
	}
	user := &models.User{}
	row := s.conn.QueryRow(ctx, stmt.Name, id)
	if err := row.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrUserNotFound
		}
		s.log.Error().Err(err).Str("id", id).Msg("failed to get user")
		return nil, err
	}
	if user.Blogs, err = s.userBlogIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_username", s.prepGetUserByUsername)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get user by username")
		return nil, err
	}
	user := &models.User{}
	row := s.conn.QueryRow(ctx, stmt.Name, username)
	if err := row.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrUserNotFound
		}
		s.log.Error().Err(err).Str("username", username).Msg("failed to get user")
		return nil, err
	}
	if user.Blogs, err = s.userBlogIDs(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) userBlogIDs(ctx context.Context, userID string) ([]string, error) {
	stmt, err := s.conn.Prepare(ctx, "get_user_blog_ids", s.prepGetUserBlogIDs)
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) CreateAnecdote(ctx context.Context, anecdote *models.Anecdote) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	anecdote.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_anecdote", s.prepCreateAnecdote)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare create anecdote")
		return err
	}
	if _, err = s.conn.Exec(ctx, stmt.Name, anecdote.ID, anecdote.Content, anecdote.Votes); err != nil {
		s.log.Error().Err(err).Msg("failed to create anecdote")
		return err
	}
	return nil
}

func (s *Storage) GetAnecdoteByID(ctx context.Context, id string) (*models.Anecdote, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_anecdote_by_id", s.prepGetAnecdoteByID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get anecdote by id")
		return nil, err
	}
	anecdote := &models.Anecdote{}
	row := s.conn.QueryRow(ctx, stmt.Name, id)
	if err := row.Scan(&anecdote.ID, &anecdote.Content, &anecdote.Votes); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrAnecdoteNotFound
		}
		s.log.Error().Err(err).Str("id", id).Msg("failed to get anecdote")
		return nil, err
	}
	return anecdote, nil
}

func (s *Storage) GetAnecdotes(ctx context.Context) ([]models.Anecdote, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_anecdotes", s.prepGetAnecdotes)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare get anecdotes")
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to query anecdotes")
		return nil, err
	}
	defer rows.Close()

	anecdotes := []models.Anecdote{}
	for rows.Next() {
		a := models.Anecdote{}
		if err := rows.Scan(&a.ID, &a.Content, &a.Votes); err != nil {
			return nil, err
		}
		anecdotes = append(anecdotes, a)
	}
	return anecdotes, rows.Err()
}

func (s *Storage) UpdateAnecdote(ctx context.Context, id string, anecdote *models.Anecdote) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "update_anecdote", s.prepUpdateAnecdote)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to prepare update anecdote")
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, anecdote.Content, anecdote.Votes, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to update anecdote")
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrAnecdoteNotFound
	}
	anecdote.ID = id
	return nil
}
