package models

// Category groups menu items. Products reference a category by id+name
// projection only, never by full ownership.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
