// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"plume/internal/models"
	"plume/internal/repository"

	"github.com/google/uuid"
)

// ImageURLPrefix is the fixed path prefix blobs are served under.
const ImageURLPrefix = "/images"

// BlobStore persists image blobs under generated filenames.
type BlobStore interface {
	Put(filename string, data []byte) error
}

// AvatarFetcher retrieves avatar bytes from a user-supplied URL.
type AvatarFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SubmitPostInput is the validated-field payload of one submission.
// ImageData and AvatarURL are optional; empty means absent.
type SubmitPostInput struct {
	Body      string
	Author    string
	ImageData []byte
	AvatarURL string
}

// FeedPost is the template-facing view of a post. ImageURL and AvatarURL are
// empty strings when the post has no corresponding blob.
type FeedPost struct {
	Body      string
	Author    string
	Date      string
	ImageURL  string
	AvatarURL string
}

// PostService orchestrates submissions and feed assembly.
type PostService struct {
	repo    repository.PostRepository
	store   BlobStore
	fetcher AvatarFetcher
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository, store BlobStore, fetcher AvatarFetcher) *PostService {
	return &PostService{
		repo:    repo,
		store:   store,
		fetcher: fetcher,
	}
}

// Submit runs the submission pipeline for one post: validate fields, persist
// the image blob, fetch and persist the avatar blob, insert the record.
//
// Side effects happen strictly in that order, and the database insert is
// last: it is the only step that makes the post visible to readers. Any
// failure aborts the rest of the pipeline; blobs written before an abort are
// orphaned and never cleaned up, but no record ever references a blob that
// was not written first.
func (s *PostService) Submit(ctx context.Context, in SubmitPostInput) (*models.Post, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Text is required")
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		return nil, models.NewValidationError("User is required")
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	var imageRef *string
	if len(in.ImageData) > 0 {
		name := fmt.Sprintf("image-%s.%s", id, extensionFor(in.ImageData))
		if err := s.store.Put(name, in.ImageData); err != nil {
			return nil, models.NewInternalError(err)
		}
		imageRef = &name
	}

	var avatarRef *string
	if avatarURL := strings.TrimSpace(in.AvatarURL); avatarURL != "" {
		data, err := s.fetcher.Fetch(ctx, avatarURL)
		if err != nil {
			// A bad avatar URL is invalid input: the whole submission is
			// rejected rather than producing a post without its avatar.
			return nil, models.NewValidationError("failed to load avatar image")
		}
		name := fmt.Sprintf("avatar-%s.%s", id, extensionFor(data))
		if err := s.store.Put(name, data); err != nil {
			return nil, models.NewInternalError(err)
		}
		avatarRef = &name
	}

	post := &models.Post{
		ID:        id,
		Author:    author,
		Body:      body,
		ImageRef:  imageRef,
		AvatarRef: avatarRef,
		CreatedAt: createdAt,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return post, nil
}

// Feed loads all posts newest-first and maps them into template view models.
func (s *PostService) Feed(ctx context.Context) ([]FeedPost, error) {
	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	feed := make([]FeedPost, 0, len(posts))
	for _, post := range posts {
		fp := FeedPost{
			Body:   post.Body,
			Author: post.Author,
			Date:   post.CreatedAt.UTC().Format("Jan 2, 2006 15:04"),
		}
		if post.ImageRef != nil {
			fp.ImageURL = ImageURLPrefix + "/" + *post.ImageRef
		}
		if post.AvatarRef != nil {
			fp.AvatarURL = ImageURLPrefix + "/" + *post.AvatarRef
		}
		feed = append(feed, fp)
	}
	return feed, nil
}

// extensionFor sniffs the blob content type and maps it to a file extension.
func extensionFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "bin"
	}
}
