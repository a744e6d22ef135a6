package models

import "time"

// Post is a topic thread within a section.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SectionID   uint      `gorm:"not null;index" json:"section_id"`
	Topic       string    `gorm:"not null" json:"topic"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Section only carries the foreign key constraint; it is never loaded.
	Section *Section `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostWithComments is a post together with its aggregated comments.
// Comments is never nil.
type PostWithComments struct {
	Post
	Comments []CommentWithChildren `json:"comments"`
}
