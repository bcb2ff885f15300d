// Package errs contains commonly shared errors
package errs

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Categories. Every error returned by the domain packages wraps exactly one of these.
var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("integrity conflict")
	ErrNotFound         = errors.New("entity not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrAuthentication   = errors.New("auth invalid")
	ErrResource         = errors.New("store unavailable")
)

var (
	ErrNameRequired      = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: name is too long", ErrValidation)
	ErrInvalidSide       = fmt.Errorf("%w: side must be 'my' or 'opp'", ErrValidation)
	ErrRosterFull        = fmt.Errorf("%w: roster limit reached", ErrValidation)
	ErrSameTeam          = fmt.Errorf("%w: a team cannot play itself", ErrValidation)
	ErrNegativeRounds    = fmt.Errorf("%w: rounds must be non-negative", ErrValidation)
	ErrTooFewRounds      = fmt.Errorf("%w: not enough rounds played", ErrValidation)
	ErrNegativeStat      = fmt.Errorf("%w: player stats must be non-negative", ErrValidation)
	ErrPlayerNotOnTeam   = fmt.Errorf("%w: player is not on that team", ErrValidation)
	ErrUnknownMap        = fmt.Errorf("%w: map does not exist", ErrValidation)
	ErrUnknownTeam       = fmt.Errorf("%w: team does not exist", ErrValidation)
	ErrCredentials       = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: unknown role", ErrValidation)
	ErrStorePathRequired = fmt.Errorf("%w: store path is required", ErrValidation)

	ErrDuplicate      = fmt.Errorf("%w: entity already exists", ErrConflict)
	ErrDuplicateMap   = fmt.Errorf("%w: a map with that name already exists", ErrConflict)
	ErrUsernameTaken  = fmt.Errorf("%w: username already registered", ErrConflict)
	ErrCaptainHasTeam = fmt.Errorf("%w: captain already owns another team", ErrConflict)
	ErrTeamHasCaptain = fmt.Errorf("%w: team already has a captain", ErrConflict)

	ErrNoResult       = fmt.Errorf("%w: no results found", ErrNotFound)
	ErrTeamNotFound   = fmt.Errorf("%w: team", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("%w: player", ErrNotFound)
	ErrMapNotFound    = fmt.Errorf("%w: map", ErrNotFound)
	ErrNoCaptain      = fmt.Errorf("%w: captain", ErrNotFound)
	ErrNoOwnedTeam    = fmt.Errorf("%w: captain has no team", ErrNotFound)

	ErrVisitorReadOnly = fmt.Errorf("%w: visitors are read-only", ErrPermissionDenied)
	ErrNotOwner        = fmt.Errorf("%w: team is owned by another captain", ErrPermissionDenied)
	ErrAdminOnly       = fmt.Errorf("%w: administrator only", ErrPermissionDenied)

	ErrLoginRejected = fmt.Errorf("%w: bad username or password", ErrAuthentication)
	ErrInvalidToken  = fmt.Errorf("%w: invalid session token", ErrAuthentication)
	ErrStaleSession  = fmt.Errorf("%w: captain session is not valid for the open store", ErrAuthentication)
	ErrStoreClosed   = fmt.Errorf("%w: no store is open", ErrResource)
)

// DBErr is used to wrap common database errors in our own error types.
func DBErr(rootError error) error {
	if rootError == nil {
		return nil
	}

	if errors.Is(rootError, gorm.ErrRecordNotFound) {
		return ErrNoResult
	}

	if errors.Is(rootError, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}

	var sqliteErr *sqlite.Error
	if errors.As(rootError, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrDuplicate
		default:
			return rootError
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(rootError, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicate
		default:
			return rootError
		}
	}

	return rootError
}
