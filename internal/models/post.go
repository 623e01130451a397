// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a published blog entry.
//
// ImageRef and AvatarRef hold blob filenames under the image directory; they
// are nil when the submission carried no image or no avatar URL. A non-nil
// ref always names a blob that was written before this record was committed.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Author    string    `gorm:"not null" json:"author"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageRef  *string   `json:"image_ref,omitempty"`
	AvatarRef *string   `json:"avatar_ref,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
