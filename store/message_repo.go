package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/models"
)

// MessageRepo provides persistence operations for contact-form submissions.
// Messages are write-once: there is no update operation.
type MessageRepo struct {
	client *firestore.Client
}

func NewMessageRepo(client *firestore.Client) *MessageRepo {
	return &MessageRepo{client: client}
}

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]models.Message, error) {
	iter := r.client.Collection(messagesCollection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := make([]models.Message, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewStoreErr("list", messagesCollection, err)
		}

		var m models.Message
		if err := snap.DataTo(&m); err != nil {
			return nil, errs.NewStoreErrKind("list", messagesCollection, errs.KindValidation, err)
		}
		m.ID = snap.Ref.ID
		out = append(out, m)
	}
	return out, nil
}

// Get returns a single message by document ID.
func (r *MessageRepo) Get(ctx context.Context, id string) (*models.Message, error) {
	snap, err := r.client.Collection(messagesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.NewStoreErr("get", messagesCollection, err)
	}

	var m models.Message
	if err := snap.DataTo(&m); err != nil {
		return nil, errs.NewStoreErrKind("get", messagesCollection, errs.KindValidation, err)
	}
	m.ID = snap.Ref.ID
	return &m, nil
}

// Create stores a new contact-form submission with a server-side timestamp.
func (r *MessageRepo) Create(ctx context.Context, input models.MessageInput) (string, error) {
	doc := r.client.Collection(messagesCollection).NewDoc()
	_, err := doc.Create(ctx, map[string]any{
		"name":           input.Name,
		"email":          input.Email,
		"projectDetails": input.ProjectDetails,
		"createdAt":      firestore.ServerTimestamp,
	})
	if err != nil {
		return "", errs.NewStoreErr("create", messagesCollection, err)
	}
	return doc.ID, nil
}

// Delete removes exactly the message with the given ID.
func (r *MessageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(messagesCollection).Doc(id).Delete(ctx); err != nil {
		return errs.NewStoreErr("delete", messagesCollection, err)
	}
	return nil
}
