// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"context"
	"fmt"
	"time"

	"plume/internal/models"
	"plume/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Posts creates count demo posts through the repository, with authors and
// bodies from gofakeit and created_at spread over the past month.
func Posts(ctx context.Context, repo repository.PostRepository, count int) error {
	gofakeit.Seed(time.Now().UnixNano())

	for i := 0; i < count; i++ {
		back := time.Duration(gofakeit.Number(0, 30*24*60)) * time.Minute
		post := &models.Post{
			ID:        uuid.NewString(),
			Author:    gofakeit.Username(),
			Body:      gofakeit.Paragraph(1, 3, 8, "\n"),
			CreatedAt: time.Now().UTC().Add(-back),
		}
		if err := repo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to seed post %d: %w", i, err)
		}
	}
	return nil
}
