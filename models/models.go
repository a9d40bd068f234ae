// Package models holds the gorm entities of the blog.
package models

// All returns every entity in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
		&PageView{},
	}
}
