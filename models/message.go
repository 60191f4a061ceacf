package models

import "time"

// Message is a contact-form submission. Messages are write-once: they are
// created from the public form and only ever listed or deleted afterwards.
type Message struct {
	ID             string    `json:"id" firestore:"-"`
	Name           string    `json:"name" firestore:"name"`
	Email          string    `json:"email" firestore:"email"`
	ProjectDetails string    `json:"projectDetails" firestore:"projectDetails"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

// MessageInput carries the fields submitted through the public contact form.
type MessageInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProjectDetails string `json:"projectDetails"`
}
