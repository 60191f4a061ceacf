package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/models"
)

// updatableProjectFields is the set of document fields a partial update may
// touch. The order field is included so an explicit reposition is possible,
// but the dense-permutation contract is only maintained by ReorderCommit.
var updatableProjectFields = map[string]bool{
	"title":        true,
	"description":  true,
	"technologies": true,
	"githubUrl":    true,
	"liveUrl":      true,
	"imageUrl":     true,
	"featured":     true,
	"order":        true,
}

// ProjectRepo provides persistence operations for the projects collection.
type ProjectRepo struct {
	client *firestore.Client
}

func NewProjectRepo(client *firestore.Client) *ProjectRepo {
	return &ProjectRepo{client: client}
}

// List returns all projects ordered ascending by their order field.
func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	iter := r.client.Collection(projectsCollection).OrderBy("order", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := make([]models.Project, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewStoreErr("list", projectsCollection, err)
		}

		var p models.Project
		if err := snap.DataTo(&p); err != nil {
			return nil, errs.NewStoreErrKind("list", projectsCollection, errs.KindValidation, err)
		}
		p.ID = snap.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// Get returns a single project by document ID.
func (r *ProjectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	snap, err := r.client.Collection(projectsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, errs.NewStoreErr("get", projectsCollection, err)
	}

	var p models.Project
	if err := snap.DataTo(&p); err != nil {
		return nil, errs.NewStoreErrKind("get", projectsCollection, errs.KindValidation, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

// Create inserts a new project document. The caller decides the order value;
// appending to the end means passing the pre-creation project count. Both
// timestamps are assigned by the server.
func (r *ProjectRepo) Create(ctx context.Context, input models.ProjectInput) (string, error) {
	doc := r.client.Collection(projectsCollection).NewDoc()
	_, err := doc.Create(ctx, map[string]any{
		"title":        input.Title,
		"description":  input.Description,
		"technologies": input.Technologies,
		"githubUrl":    input.GithubURL,
		"liveUrl":      input.LiveURL,
		"imageUrl":     input.ImageURL,
		"featured":     input.Featured,
		"order":        input.Order,
		"createdAt":    firestore.ServerTimestamp,
		"updatedAt":    firestore.ServerTimestamp,
	})
	if err != nil {
		return "", errs.NewStoreErr("create", projectsCollection, err)
	}
	return doc.ID, nil
}

// Update merges the given fields into an existing document and re-stamps
// updatedAt. Unknown field names are rejected before anything is written.
func (r *ProjectRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for name, value := range fields {
		if !updatableProjectFields[name] {
			return errs.NewStoreErrKind("update", projectsCollection, errs.KindValidation,
				&unknownFieldError{field: name})
		}
		updates = append(updates, firestore.Update{Path: name, Value: value})
	}
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := r.client.Collection(projectsCollection).Doc(id).Update(ctx, updates); err != nil {
		return errs.NewStoreErr("update", projectsCollection, err)
	}
	return nil
}

// Delete removes a project document. The associated stored assets are the
// caller's responsibility to clean up.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Collection(projectsCollection).Doc(id).Delete(ctx); err != nil {
		return errs.NewStoreErr("delete", projectsCollection, err)
	}
	return nil
}

// ReorderCommit persists a full locally-ordered sequence in one transaction:
// every document's order field becomes its index in the sequence and
// updatedAt is re-stamped. The write is all-or-nothing; a failure leaves
// every order value as it was.
func (r *ProjectRepo) ReorderCommit(ctx context.Context, ordered []models.Project) error {
	if len(ordered) == 0 {
		return nil
	}

	assignments := orderAssignments(ordered)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, a := range assignments {
			ref := r.client.Collection(projectsCollection).Doc(a.ID)
			if err := tx.Update(ref, []firestore.Update{
				{Path: "order", Value: a.Order},
				{Path: "updatedAt", Value: firestore.ServerTimestamp},
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.NewStoreErr("reorder commit", projectsCollection, err)
	}
	return nil
}

// orderAssignment pairs a document ID with the order value it will receive.
type orderAssignment struct {
	ID    string
	Order int
}

// orderAssignments maps a locally-ordered sequence to the dense permutation
// of order values 0..N-1 that ReorderCommit writes.
func orderAssignments(ordered []models.Project) []orderAssignment {
	out := make([]orderAssignment, len(ordered))
	for i, p := range ordered {
		out[i] = orderAssignment{ID: p.ID, Order: i}
	}
	return out
}

type unknownFieldError struct {
	field string
}

func (e *unknownFieldError) Error() string {
	return "unknown project field: " + e.field
}
