package models

import (
	"fmt"
	"time"
)

// Follow is a directed edge from a follower (User) to a followed author.
// The pair is unique; either side is nulled when that account is deleted.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"uniqueIndex:idx_follow_pair" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AuthorID  *uint     `gorm:"uniqueIndex:idx_follow_pair;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Follow) String() string {
	return fmt.Sprintf("user - %s author - %s", f.User, f.Author)
}
