package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"pinboard/internal/models"
)

// UserFile stores every credential in one shared JSON document, an object
// mapping username to bcrypt hash. Each Put rewrites the whole document.
type UserFile struct {
	path string
}

func NewUserFile(path string) *UserFile {
	return &UserFile{path: path}
}

var _ Credentials = (*UserFile)(nil)

// All reads the shared credential document. A missing file is an empty
// store; an unreadable one is a hard error, since silently dropping
// credentials would lock every user out.
func (r *UserFile) All() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read credentials %q: %w", r.path, err)
	}

	users := map[string]string{}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode credentials %q: %w", r.path, err)
	}
	return users, nil
}

// GetByUsername looks up a single user. Returns (nil, nil) if not found.
func (r *UserFile) GetByUsername(username string) (*models.User, error) {
	users, err := r.All()
	if err != nil {
		return nil, err
	}
	hash, ok := users[username]
	if !ok {
		return nil, nil
	}
	return &models.User{Username: username, PasswordHash: hash}, nil
}

// Put stores a hash for username and rewrites the full document.
func (r *UserFile) Put(username, hash string) error {
	users, err := r.All()
	if err != nil {
		return err
	}
	users[username] = hash
	return writeDocument(r.path, users)
}
