package models

import "time"

// PageView counts successful GET requests per day and path.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"size:10;not null;uniqueIndex:idx_pv_day_path" json:"day"`
	Path      string    `gorm:"size:255;not null;uniqueIndex:idx_pv_day_path;index" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayKey formats t as the local calendar day used in PageView.Day.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}
