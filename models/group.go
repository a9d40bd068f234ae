package models

import "regexp"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group is a topic that posts can be filed under. The slug is its public identity.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
	Posts       []Post `json:"-"`
}

func (g *Group) String() string {
	if g == nil {
		return ""
	}
	return g.Title
}

// ValidSlug reports whether s is a URL-safe slug of at most 50 characters.
func ValidSlug(s string) bool {
	return len(s) <= 50 && slugPattern.MatchString(s)
}
