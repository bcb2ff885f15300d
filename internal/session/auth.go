package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trentd187/statteam/internal/database"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
)

// Credentials is what the login screen submits. Username and Password are ignored for
// visitors.
type Credentials struct {
	Role     models.Role `json:"role"`
	Username string      `json:"username"`
	Password string      `json:"password"`
}

// Authenticator validates logins and registers captains.
//
// Passwords are stored and compared as plain text, and there is no lock-out after
// repeated failures.
type Authenticator struct {
	store *database.Store
}

func NewAuthenticator(store *database.Store) *Authenticator {
	return &Authenticator{store: store}
}

// Login turns credentials into a Session. Each call is independent: a second login simply
// produces a new session.
func (a *Authenticator) Login(ctx context.Context, creds Credentials) (Session, error) {
	switch creds.Role {
	case models.RoleVisitor:
		return Visitor(), nil
	case models.RoleAdmin:
		if creds.Username == models.AdminUsername && creds.Password == models.AdminPassword {
			return Admin(), nil
		}

		slog.Warn("Rejected administrator login", slog.String("username", creds.Username))

		return Session{}, errs.ErrLoginRejected
	case models.RoleCaptain:
		return a.loginCaptain(ctx, creds)
	default:
		return Session{}, errs.ErrInvalidRole
	}
}

func (a *Authenticator) loginCaptain(ctx context.Context, creds Credentials) (Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return Session{}, errs.ErrCredentials
	}

	db, err := a.store.DB(ctx)
	if err != nil {
		return Session{}, err
	}

	var captain models.Captain
	if errFind := db.Where("username = ? AND password = ?", creds.Username, creds.Password).
		First(&captain).Error; errFind != nil {
		if errors.Is(errs.DBErr(errFind), errs.ErrNotFound) {
			slog.Warn("Rejected captain login", slog.String("username", creds.Username))

			return Session{}, errs.ErrLoginRejected
		}

		return Session{}, fmt.Errorf("find captain: %w", errFind)
	}

	sess := ForCaptain(captain.Username)
	sess.Store = a.store.Location()

	return sess, nil
}

// Resolve checks a captain session against the open store. The session must come from a
// login to this store and the captain must still exist. Other roles pass through.
func (a *Authenticator) Resolve(ctx context.Context, sess Session) (Session, error) {
	if sess.Role != models.RoleCaptain {
		return sess, nil
	}

	if sess.Store != a.store.Location() {
		slog.Warn("Rejected captain session from another store",
			slog.String("username", sess.Captain), slog.String("store", sess.Store))

		return Session{}, errs.ErrStaleSession
	}

	db, err := a.store.DB(ctx)
	if err != nil {
		return Session{}, err
	}

	var captain models.Captain
	if errFind := db.Where("username = ?", sess.Captain).First(&captain).Error; errFind != nil {
		if errors.Is(errs.DBErr(errFind), errs.ErrNotFound) {
			slog.Warn("Rejected session of deleted captain", slog.String("username", sess.Captain))

			return Session{}, errs.ErrStaleSession
		}

		return Session{}, fmt.Errorf("find captain: %w", errFind)
	}

	return sess, nil
}

// Register creates a new captain account. The username must be unused.
func (a *Authenticator) Register(ctx context.Context, username, password string) (models.Captain, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Captain{}, errs.ErrCredentials
	}

	if _, err := models.CleanName(username); err != nil {
		return models.Captain{}, err
	}

	db, err := a.store.DB(ctx)
	if err != nil {
		return models.Captain{}, err
	}

	captain := models.Captain{Username: username, Password: password}
	if errCreate := db.Create(&captain).Error; errCreate != nil {
		if errors.Is(errs.DBErr(errCreate), errs.ErrDuplicate) {
			return models.Captain{}, errs.ErrUsernameTaken
		}

		return models.Captain{}, fmt.Errorf("create captain: %w", errCreate)
	}

	slog.Info("Registered captain", slog.String("username", username))

	return captain, nil
}
