package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "chat-relay/errors"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(username, hashedPassword string) error
	GetUser(username string) (User, error)
}

// UserRepository stores credential records in BadgerDB. The relay opens
// Badger in in-memory mode, so records live for the process lifetime only.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the stored credential record. Records are created once at
// registration and never mutated or deleted.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func userKey(username string) []byte {
	return []byte("user:" + username)
}

// CreateUser persists a new credential record. The existence check and
// the insert run in the same transaction, so two concurrent
// registrations for the same username cannot both commit.
func (u UserRepository) CreateUser(username, hashedPassword string) error {
	record := User{
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return u.db.Update(func(txn *badger.Txn) error {
		key := userKey(username)
		if _, err := txn.Get(key); err == nil {
			return apperrors.ErrUsernameTaken
		}
		return txn.Set(key, data)
	})
}

// GetUser retrieves a credential record by username.
func (u UserRepository) GetUser(username string) (User, error) {
	var record User

	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}

	return record, nil
}
