package session

import (
	"context"
	"errors"
	"strconv"
)

// ErrMiss is returned when a session has no value for the requested field.
var ErrMiss = errors.New("session miss")

const (
	// FieldUserID holds the owner of a session. Its absence means the
	// session was closed or expired.
	FieldUserID = "user_id"
	// FieldCompanyID holds the active company of a session.
	FieldCompanyID = "company_id"
)

// Store keeps small per-session values keyed by session id.
type Store interface {
	Get(ctx context.Context, sid, field string) (string, error)
	Set(ctx context.Context, sid, field, value string) error
	Delete(ctx context.Context, sid string) error
}

// Open starts a session owned by userID.
func Open(ctx context.Context, s Store, sid string, userID uint) error {
	return s.Set(ctx, sid, FieldUserID, strconv.FormatUint(uint64(userID), 10))
}

// IsOpen reports whether sid is a live session of userID.
func IsOpen(ctx context.Context, s Store, sid string, userID uint) (bool, error) {
	owner, err := s.Get(ctx, sid, FieldUserID)
	if errors.Is(err, ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == strconv.FormatUint(uint64(userID), 10), nil
}
