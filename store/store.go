package store

import (
	"cloud.google.com/go/firestore"
)

const (
	projectsCollection = "projects"
	messagesCollection = "messages"
)

// Store bundles one repository per collection, all sharing a single
// Firestore client.
type Store struct {
	projectRepo *ProjectRepo
	messageRepo *MessageRepo
}

// New initializes a Store with each repository using a shared Firestore client.
func New(client *firestore.Client) Store {
	return Store{
		projectRepo: NewProjectRepo(client),
		messageRepo: NewMessageRepo(client),
	}
}

func (s Store) Projects() *ProjectRepo {
	return s.projectRepo
}

func (s Store) Messages() *MessageRepo {
	return s.messageRepo
}
