package main

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
	"github.com/sbilibin2017/gw-user-posts/internal/repositories"
)

// memStore is an in-memory stand-in for the Postgres repositories used by the
// router tests. It reports the same sentinel errors.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.UserDB
	posts map[uuid.UUID]models.PostDB
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uuid.UUID]models.UserDB{},
		posts: map[uuid.UUID]models.PostDB{},
	}
}

type memUsers struct{ *memStore }

type memPosts struct{ *memStore }

func (s memUsers) find(match func(models.UserDB) bool) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.Email == email })
}

func (s memUsers) GetByUsername(_ context.Context, username string) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.Username == username })
}

func (s memUsers) GetByID(_ context.Context, userID uuid.UUID) (*models.UserDB, error) {
	return s.find(func(u models.UserDB) bool { return u.UserID == userID })
}

func (s memUsers) taken(except uuid.UUID, username, email string) bool {
	for _, u := range s.users {
		if u.UserID == except {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return true
		}
	}
	return false
}

func (s memUsers) Save(_ context.Context, username, passwordHash, email string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken(uuid.Nil, username, email) {
		return nil, repositories.ErrConflict
	}
	now := time.Now()
	u := models.UserDB{UserID: uuid.New(), Username: username, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	s.users[u.UserID] = u
	return &u, nil
}

func (s memUsers) Update(_ context.Context, userID uuid.UUID, username, email string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if s.taken(userID, username, email) {
		return nil, repositories.ErrConflict
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	u.UpdatedAt = time.Now()
	s.users[userID] = u
	return &u, nil
}

func (s memUsers) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.users, userID)
	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
		}
	}
	return nil
}

func (s memPosts) GetByID(_ context.Context, postID uuid.UUID) (*models.PostDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s memPosts) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.PostDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PostDB{}
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memPosts) Save(_ context.Context, userID uuid.UUID, title, content string) (*models.PostDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return nil, repositories.ErrNotFound
	}
	now := time.Now()
	p := models.PostDB{PostID: uuid.New(), UserID: userID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	s.posts[p.PostID] = p
	return &p, nil
}

func (s memPosts) Delete(_ context.Context, postID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.posts, postID)
	return nil
}

// memAttempts counts failed logins without expiry.
type memAttempts struct {
	mu sync.Mutex
	n  map[string]int64
}

func (a *memAttempts) Count(_ context.Context, username string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.n[username], nil
}

func (a *memAttempts) Increment(_ context.Context, username string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n[username]++
	return a.n[username], nil
}

func (a *memAttempts) Reset(_ context.Context, username string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.n, username)
	return nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }
