package services

import (
	"context"
	"errors"
	"garage/internal/latency"
	"garage/internal/models"
	"garage/internal/repository"
	"garage/internal/storage"
	"garage/internal/store"
	"garage/internal/structures"
	"garage/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-123"

func newTestAuth(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	conf := &structures.Config{Auth: structures.AuthConfig{Secret: testSecret, SessionWindow: time.Hour}}
	logger := &testutil.MockLogger{}
	st := store.NewStore(storage.NewMemoryStorage(), storage.NewKeys("t"), logger, testutil.NewMockMetrics())
	users := repository.NewUserRepository(st, repository.NewIDGenerator())
	return NewAuthService(users, st, NewTokenIssuer(conf), latency.NewSimulator(0), logger), st
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	reg, err := auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, reg.User.Role)
	assert.NotEmpty(t, reg.Token)

	raw, err := json.Marshal(reg.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	login, err := auth.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

type flakyIssuer struct {
	failures int
	next     TokenIssuerInterface
}

func (f *flakyIssuer) Issue(userID string) (string, error) {
	if f.failures > 0 {
		f.failures--
		return "", errors.New("signer unavailable")
	}
	return f.next.Issue(userID)
}

func TestAuthService_RegisterKeepsAccountWhenSessionFails(t *testing.T) {
	conf := &structures.Config{Auth: structures.AuthConfig{Secret: testSecret, SessionWindow: time.Hour}}
	logger := &testutil.MockLogger{}
	st := store.NewStore(storage.NewMemoryStorage(), storage.NewKeys("t"), logger, testutil.NewMockMetrics())
	users := repository.NewUserRepository(st, repository.NewIDGenerator())
	auth := NewAuthService(users, st, &flakyIssuer{failures: 1, next: NewTokenIssuer(conf)}, latency.NewSimulator(0), logger)
	ctx := context.Background()

	_, err := auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sign in to continue")
	assert.Equal(t, 1, logger.Count("error", "was created but no session"))

	session, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	login, err := auth.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", login.User.Email)
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	auth, st := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "other12"})
	require.ErrorIs(t, err, repository.ErrEmailTaken)

	ds, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Users, 1)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@x.com", "SECRET1")
	assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
}

func TestAuthService_SessionSlot(t *testing.T) {
	auth, _ := newTestAuth(t)
	ctx := context.Background()

	session, err := auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	reg, err := auth.Register(ctx, models.Registration{Email: "a@x.com", Password: "secret1", FirstName: "Ann"})
	require.NoError(t, err)

	session, err = auth.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, reg, *session)

	require.NoError(t, auth.Logout(ctx))
	session, err = auth.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestTokenIssuer_Claims(t *testing.T) {
	conf := &structures.Config{Auth: structures.AuthConfig{Secret: testSecret, SessionWindow: time.Hour}}
	issuer := NewTokenIssuer(conf)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	token, err := issuer.Issue("u1")
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return fixed }))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}
