package api

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"github.com/alexvr/portfolio-backend/models"
	"github.com/alexvr/portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	messageHandler messageHandler
	githubHandler  githubHandler
	authHandler    authHandler
	uploadHandler  uploadHandler
}

// ProjectStore is the repository surface the project handlers consume.
type ProjectStore interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, input models.ProjectInput) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	ReorderCommit(ctx context.Context, ordered []models.Project) error
}

// MessageStore is the repository surface the message handlers consume.
type MessageStore interface {
	List(ctx context.Context) ([]models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	Create(ctx context.Context, input models.MessageInput) (string, error)
	Delete(ctx context.Context, id string) error
}

// AssetStore is the blob-storage surface used for project images.
type AssetStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// StatsProvider serves the public GitHub statistics widget.
type StatsProvider interface {
	Stats(ctx context.Context) (*models.GitHubStats, error)
}

// TokenVerifier validates Firebase ID tokens; *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// SignInService performs the email/password credential check.
type SignInService interface {
	SignIn(ctx context.Context, email, password string) (*services.SignInResult, error)
}

// MessageNotifier is the optional owner-notification hook for new messages.
type MessageNotifier interface {
	NotifyNewMessage(ctx context.Context, m models.Message) error
}

// ErrorResponse represents an error response from the API.
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Kind    string `json:"kind,omitempty" example:"network"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
