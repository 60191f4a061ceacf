package models

import "time"

// Project represents a single portfolio entry stored in the projects collection.
// Order is the sole display-ordering key: after every successful reorder commit
// the order values across all projects form a dense permutation of 0..N-1.
type Project struct {
	ID           string    `json:"id" firestore:"-"`
	Title        string    `json:"title" firestore:"title"`
	Description  string    `json:"description" firestore:"description"`
	Technologies []string  `json:"technologies" firestore:"technologies"`
	GithubURL    string    `json:"githubUrl" firestore:"githubUrl"`
	LiveURL      string    `json:"liveUrl" firestore:"liveUrl"`
	ImageURL     string    `json:"imageUrl" firestore:"imageUrl"`
	Featured     bool      `json:"featured" firestore:"featured"`
	Order        int       `json:"order" firestore:"order"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ProjectInput carries the caller-settable fields of a project. The document
// ID and both timestamps are assigned server-side.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GithubURL    string   `json:"githubUrl"`
	LiveURL      string   `json:"liveUrl"`
	ImageURL     string   `json:"imageUrl"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}
