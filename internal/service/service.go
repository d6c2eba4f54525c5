package service

import (
	"pinboard/internal/logger"
	"pinboard/internal/models"
	"pinboard/internal/repository"
)

// Authorization covers registration, login and the signed session token
// that carries the identity between requests.
type Authorization interface {
	Register(username, password string) (string, error)
	Authenticate(username, password string) (string, error)
	IssueSession(username string) (string, error)
	ParseSession(token string) (string, error)
}

// Notes exposes the per-user note operations. Every method takes the
// identity explicitly; an empty username means no session is active and
// mutations silently no-op.
type Notes interface {
	List(username string) ([]models.Note, error)
	Get(username string, id int) (models.Note, bool, error)
	Create(username, text string) error
	Edit(username string, id int, text string) error
	TogglePin(username string, id int) error
	Delete(username string, id int) error
}

type Service struct {
	Authorization
	Notes
}

// AuthConfig carries the session-token settings read from configuration.
type AuthConfig struct {
	SigningKey string
	SessionTTL int // seconds
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg AuthConfig, log *logger.Logger) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Credentials, cfg),
		Notes:         NewNotesService(repos.Notes, log),
	}
}
