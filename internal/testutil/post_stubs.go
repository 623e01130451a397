// Package testutil provides shared test doubles and fixtures.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"plume/internal/models"
)

// PostRepoStub is an in-memory post repository implementation for tests.
// It mirrors the real repository's contract: duplicate ids fail, ListAll
// returns posts ordered by created_at descending with id as tie-break.
type PostRepoStub struct {
	mu    sync.Mutex
	posts []*models.Post

	// CreateErr, when set, is returned by Create without storing anything.
	CreateErr error
	// ListErr, when set, is returned by ListAll.
	ListErr error
}

// NewPostRepoStub creates an empty in-memory post repository stub.
func NewPostRepoStub() *PostRepoStub {
	return &PostRepoStub{}
}

// Create stores the post in-memory.
func (s *PostRepoStub) Create(_ context.Context, post *models.Post) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.posts {
		if existing.ID == post.ID {
			return fmt.Errorf("duplicate post id %s", post.ID)
		}
	}
	clone := *post
	s.posts = append(s.posts, &clone)
	return nil
}

// ListAll returns stored posts newest-first.
func (s *PostRepoStub) ListAll(_ context.Context) ([]*models.Post, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Post, len(s.posts))
	copy(out, s.posts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Count returns the number of stored posts.
func (s *PostRepoStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}
