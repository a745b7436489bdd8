// internal/models/project.go
package models

// Project is the matching query source. Owned by project management; the
// engine reads it to get the description and to enforce ownership.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	UserID      string `json:"userId"`
}
