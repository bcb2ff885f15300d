package session_test

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/trentd187/statteam/internal/errs"
	"github.com/trentd187/statteam/internal/models"
	"github.com/trentd187/statteam/internal/session"
	"github.com/trentd187/statteam/internal/tests"
)

func TestLogin(t *testing.T) {
	fixture := tests.NewFixture(t)
	fixture.CreateCaptain("rita", "hunter2")
	auth := session.NewAuthenticator(fixture.Store)

	sess, err := auth.Login(t.Context(), session.Credentials{Role: models.RoleVisitor})
	require.NoError(t, err)
	require.Equal(t, session.Visitor(), sess)

	sess, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleAdmin, Username: models.AdminUsername, Password: models.AdminPassword})
	require.NoError(t, err)
	require.True(t, sess.IsAdmin())

	_, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleAdmin, Username: "admin", Password: "nope"})
	require.ErrorIs(t, err, errs.ErrAuthentication)

	sess, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleCaptain, Username: "rita", Password: "hunter2"})
	require.NoError(t, err)
	require.True(t, sess.IsCaptain())
	require.Equal(t, "rita", sess.Captain)
	require.Equal(t, fixture.Store.Location(), sess.Store)

	// Exact match only.
	_, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleCaptain, Username: "rita", Password: "Hunter2"})
	require.ErrorIs(t, err, errs.ErrLoginRejected)
	_, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleCaptain, Username: "RITA", Password: "hunter2"})
	require.ErrorIs(t, err, errs.ErrLoginRejected)

	_, err = auth.Login(t.Context(), session.Credentials{Role: models.RoleCaptain})
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = auth.Login(t.Context(), session.Credentials{Role: "owner"})
	require.ErrorIs(t, err, errs.ErrInvalidRole)
}

func TestRegister(t *testing.T) {
	fixture := tests.NewFixture(t)
	auth := session.NewAuthenticator(fixture.Store)

	captain, err := auth.Register(t.Context(), " sam ", "pw")
	require.NoError(t, err)
	require.Equal(t, "sam", captain.Username)

	_, err = auth.Register(t.Context(), "sam", "other")
	require.ErrorIs(t, err, errs.ErrUsernameTaken)
	require.ErrorIs(t, err, errs.ErrConflict)

	_, err = auth.Register(t.Context(), "", "pw")
	require.ErrorIs(t, err, errs.ErrCredentials)

	_, err = auth.Register(t.Context(), "x", "")
	require.ErrorIs(t, err, errs.ErrCredentials)

	require.EqualValues(t, 1, fixture.Count(&models.Captain{}))

	sess, err := auth.Login(t.Context(), session.Credentials{Role: models.RoleCaptain, Username: "sam", Password: "pw"})
	require.NoError(t, err)
	require.True(t, sess.IsCaptain())
}

func TestSessionStates(t *testing.T) {
	var loggedOut session.Session
	require.False(t, loggedOut.Authenticated())
	require.True(t, session.Visitor().Authenticated())
	require.False(t, session.Visitor().IsAdmin())
	require.False(t, session.ForCaptain("").IsCaptain())
}

func TestIssuerRoundTrip(t *testing.T) {
	issuer := session.NewIssuer("secret")

	bound := session.ForCaptain("rita")
	bound.Store = "/tmp/league.db"

	for _, sess := range []session.Session{session.Visitor(), session.Admin(), session.ForCaptain("rita"), bound} {
		token, err := issuer.Issue(sess)
		require.NoError(t, err)

		parsed, err := issuer.Parse(token)
		require.NoError(t, err)
		require.Equal(t, sess, parsed)
	}

	_, err := issuer.Issue(session.Session{})
	require.Error(t, err)
}

func TestIssuerRejectsForeignTokens(t *testing.T) {
	token, err := session.NewIssuer("secret").Issue(session.Admin())
	require.NoError(t, err)

	_, err = session.NewIssuer("other").Parse(token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)

	_, err = session.NewIssuer("secret").Parse("garbage")
	require.ErrorIs(t, err, errs.ErrAuthentication)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{Role: "captain"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = session.NewIssuer("secret").Parse(forged)
	require.ErrorIs(t, err, errs.ErrInvalidToken)

	forged, err = jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{Role: "admin", Store: "a.db"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = session.NewIssuer("secret").Parse(forged)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestResolve(t *testing.T) {
	fixture := tests.NewFixture(t)
	fixture.CreateCaptain("rita", "hunter2")
	fixture.CreateCaptain("ghost", "boo")
	auth := session.NewAuthenticator(fixture.Store)
	ctx := t.Context()

	for _, sess := range []session.Session{session.Visitor(), session.Admin()} {
		resolved, err := auth.Resolve(ctx, sess)
		require.NoError(t, err)
		require.Equal(t, sess, resolved)
	}

	rita, err := auth.Login(ctx, session.Credentials{Role: models.RoleCaptain, Username: "rita", Password: "hunter2"})
	require.NoError(t, err)
	ghost, err := auth.Login(ctx, session.Credentials{Role: models.RoleCaptain, Username: "ghost", Password: "boo"})
	require.NoError(t, err)

	resolved, err := auth.Resolve(ctx, rita)
	require.NoError(t, err)
	require.Equal(t, rita, resolved)

	_, err = auth.Resolve(ctx, session.ForCaptain("rita"))
	require.ErrorIs(t, err, errs.ErrStaleSession, "a session without a store is never accepted")

	require.NoError(t, fixture.DB().Delete(&models.Captain{Username: "ghost"}).Error)
	_, err = auth.Resolve(ctx, ghost)
	require.ErrorIs(t, err, errs.ErrStaleSession)
	require.ErrorIs(t, err, errs.ErrAuthentication)

	// Another store with its own captain of the same name.
	require.NoError(t, fixture.Store.Switch(ctx, filepath.Join(fixture.Dir, "other.db")))
	fixture.CreateCaptain("rita", "different")

	_, err = auth.Resolve(ctx, rita)
	require.ErrorIs(t, err, errs.ErrStaleSession)

	other, err := auth.Login(ctx, session.Credentials{Role: models.RoleCaptain, Username: "rita", Password: "different"})
	require.NoError(t, err)
	_, err = auth.Resolve(ctx, other)
	require.NoError(t, err)
}
