// Package session persists the single client session in the local
// metadata store and derives display data from the bearer token.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/accessdoc/internal/client/models"
	"github.com/dmitrijs2005/accessdoc/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/accessdoc/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyToken    = "token"
	keyUsername = "username"
)

// Store keeps at most one session.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Load returns the stored session, or nil when there is none.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	tok, err := s.repo(s.db).Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(tok) == 0 {
		return nil, nil
	}
	return FromToken(string(tok)), nil
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("save session: empty token")
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return r.Set(ctx, keyUsername, []byte(sess.Username))
	})
}

// Clear removes the stored token. The last username is kept so the login
// prompt can offer it.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, keyToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// LastUsername returns the username of the most recent session, if any.
func (s *Store) LastUsername(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyUsername)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// FromToken builds a session around token, reading "sub" and "exp" from
// its JWT claims when present. The signature is not checked: the server
// is the only authority on validity.
func FromToken(token string) *models.Session {
	sess := &models.Session{Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return sess
	}
	if sub, err := claims.GetSubject(); err == nil {
		sess.Username = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time.UTC().Truncate(time.Second)
	}
	return sess
}
