package models

import "time"

// Comment is a message attached to a post, optionally replying to another
// comment of the same post.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Post and Parent only carry foreign key constraints; they are never loaded.
	Post   *Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Parent *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

// CommentWithChildren is a comment annotated with the ids of its direct replies.
// Children is never nil.
type CommentWithChildren struct {
	Comment
	Children []uint `json:"children"`
}
