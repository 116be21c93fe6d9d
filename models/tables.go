package models

import "time"

type User struct {
	ID           int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // never rendered or serialized
}

type Post struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"` // rendered HTML
	Source    string    `gorm:"type:text" json:"source"`  // markdown as written by the author
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  *int      `gorm:"index" json:"author_id"` // nil for posts without an author
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// HasAuthor reports whether the post references a user.
func (p *Post) HasAuthor() bool {
	return p.AuthorID != nil
}

// IsAuthoredBy reports whether u wrote the post.
func (p *Post) IsAuthoredBy(u *User) bool {
	return u != nil && p.AuthorID != nil && *p.AuthorID == u.ID
}
