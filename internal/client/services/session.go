// Package services contains application services for the keeperbackup
// client. This file resolves the signed-in session from local metadata.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/google/uuid"
)

// Metadata keys holding the session of the local client.
const (
	KeyUserID   = "user_id"
	KeyClientID = "client_id"
	KeyUsername = "username"
)

// ErrNoSession is returned when the local database has no signed-in user
// and none was supplied.
var ErrNoSession = errors.New("no local session: sign in first or pass --user-id")

// SessionService resolves the account a backup is taken for.
type SessionService interface {
	// Current returns the local session. Non-empty fields of override take
	// precedence over stored values. A missing client id is generated and
	// stored.
	Current(ctx context.Context, override models.Session) (models.Session, error)
}

type sessionService struct {
	db dbx.DBTX
}

func NewSessionService(db dbx.DBTX) SessionService {
	return &sessionService{db: db}
}

func (s *sessionService) Current(ctx context.Context, override models.Session) (models.Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	read := func(key, over string) (string, error) {
		if over != "" {
			return over, nil
		}
		v, err := repo.Get(ctx, key)
		if err != nil {
			return "", err
		}
		return string(v), nil
	}

	var (
		sess models.Session
		err  error
	)

	if sess.UserID, err = read(KeyUserID, override.UserID); err != nil {
		return models.Session{}, err
	}
	if sess.UserID == "" {
		return models.Session{}, ErrNoSession
	}

	if sess.Username, err = read(KeyUsername, override.Username); err != nil {
		return models.Session{}, err
	}

	if sess.ClientID, err = read(KeyClientID, override.ClientID); err != nil {
		return models.Session{}, err
	}
	if sess.ClientID == "" {
		sess.ClientID = uuid.NewString()
		if err := repo.Set(ctx, KeyClientID, []byte(sess.ClientID)); err != nil {
			return models.Session{}, fmt.Errorf("store client id: %w", err)
		}
	}

	return sess, nil
}
