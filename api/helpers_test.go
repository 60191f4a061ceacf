package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexvr/portfolio-backend/errs"
	"github.com/alexvr/portfolio-backend/models"
	"github.com/alexvr/portfolio-backend/services"
)

// fakeProjectStore is an in-memory ProjectStore keeping list order as the
// display order.
type fakeProjectStore struct {
	mu        sync.Mutex
	projects  []models.Project
	nextID    int
	listErr   error
	commitErr error
	updates   map[string]map[string]any
	committed []models.Project
}

func newFakeProjectStore(projects ...models.Project) *fakeProjectStore {
	return &fakeProjectStore{
		projects: projects,
		nextID:   len(projects) + 1,
		updates:  make(map[string]map[string]any),
	}
}

func notFoundErr(op, collection string) error {
	return errs.NewStoreErrKind(op, collection, errs.KindNotFound,
		fmt.Errorf("document does not exist"))
}

func (f *fakeProjectStore) List(context.Context) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeProjectStore) Get(_ context.Context, id string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, notFoundErr("get", "projects")
}

func (f *fakeProjectStore) Create(_ context.Context, input models.ProjectInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("p%d", f.nextID)
	f.nextID++
	f.projects = append(f.projects, models.Project{
		ID:           id,
		Title:        input.Title,
		Description:  input.Description,
		Technologies: input.Technologies,
		GithubURL:    input.GithubURL,
		LiveURL:      input.LiveURL,
		ImageURL:     input.ImageURL,
		Featured:     input.Featured,
		Order:        input.Order,
	})
	return id, nil
}

func (f *fakeProjectStore) Update(_ context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.updates[id] = fields
			if url, ok := fields["imageUrl"].(string); ok {
				f.projects[i].ImageURL = url
			}
			if title, ok := fields["title"].(string); ok {
				f.projects[i].Title = title
			}
			return nil
		}
	}
	return notFoundErr("update", "projects")
}

func (f *fakeProjectStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return notFoundErr("delete", "projects")
}

func (f *fakeProjectStore) ReorderCommit(_ context.Context, ordered []models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = append([]models.Project(nil), ordered...)
	reordered := make([]models.Project, len(ordered))
	for i, p := range ordered {
		p.Order = i
		reordered[i] = p
	}
	f.projects = reordered
	return nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
	nextID   int
}

func newFakeMessageStore(messages ...models.Message) *fakeMessageStore {
	return &fakeMessageStore{messages: messages, nextID: len(messages) + 1}
}

func (f *fakeMessageStore) List(context.Context) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.messages...), nil
}

func (f *fakeMessageStore) Get(_ context.Context, id string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, notFoundErr("get", "messages")
}

func (f *fakeMessageStore) Create(_ context.Context, input models.MessageInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("m%d", f.nextID)
	f.nextID++
	f.messages = append(f.messages, models.Message{
		ID:             id,
		Name:           input.Name,
		Email:          input.Email,
		ProjectDetails: input.ProjectDetails,
	})
	return id, nil
}

func (f *fakeMessageStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return notFoundErr("delete", "messages")
}

type fakeAssetStore struct {
	mu       sync.Mutex
	putKeys  []string
	putErr   error
	deleted  []string
	baseURL  string
	contents map[string][]byte
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{
		baseURL:  "https://assets.test",
		contents: make(map[string][]byte),
	}
}

func (f *fakeAssetStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	f.contents[key] = data
	return f.baseURL + "/" + key, nil
}

func (f *fakeAssetStore) DeletePrefix(_ context.Context, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, prefix)
	return nil
}

type fakeStatsProvider struct {
	stats *models.GitHubStats
	err   error
}

func (f *fakeStatsProvider) Stats(context.Context) (*models.GitHubStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

type fakeSignIn struct {
	result *services.SignInResult
	err    error
	email  string
}

func (f *fakeSignIn) SignIn(_ context.Context, email, _ string) (*services.SignInResult, error) {
	f.email = email
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified chan models.Message
	err      error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{notified: make(chan models.Message, 1)}
}

func (f *fakeNotifier) NotifyNewMessage(_ context.Context, m models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified <- m
	return f.err
}
