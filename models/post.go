package models

import "time"

// PostPreviewLength is the number of runes Post.String keeps. main sets it from config.
var PostPreviewLength = 15

// Post is a text entry by an author, optionally filed under a group and carrying an image.
// Author and Group are nil once the referenced row is deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index;<-:create" json:"pub_date"`
	AuthorID  *uint     `gorm:"index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `json:"group,omitempty"`
	Image     string    `gorm:"size:255" json:"image"`
	Comments  []Comment `json:"-"`
}

func (p *Post) String() string {
	r := []rune(p.Text)
	if len(r) > PostPreviewLength {
		r = r[:PostPreviewLength]
	}
	return string(r)
}

// IsAuthor reports whether userID wrote the post.
func (p *Post) IsAuthor(userID uint) bool {
	return userID != 0 && p.AuthorID != nil && *p.AuthorID == userID
}
