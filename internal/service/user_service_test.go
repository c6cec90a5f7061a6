package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ananyapurwar/ALGOTRACK/internal/auth"
	dom "github.com/ananyapurwar/ALGOTRACK/internal/domain"
	"github.com/ananyapurwar/ALGOTRACK/internal/repo"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepo that mimics the store's
// uniqueness and id-assignment behavior.
type fakeUserRepo struct {
	users  []dom.User
	nextID int64

	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, username, passwordHash string, handle *string, isAdmin bool) (dom.User, error) {
	if f.createErr != nil {
		return dom.User{}, f.createErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
		}
	}
	u := dom.User{
		ID:           f.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Handle:       handle,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Second),
	}
	f.nextID++
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	if f.getErr != nil {
		return dom.User{}, f.getErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return dom.User{}, repo.ErrNotFound
}

func (f *fakeUserRepo) UpdateHandle(ctx context.Context, id int64, handle string) error {
	for i, u := range f.users {
		if u.ID == id {
			h := handle
			f.users[i].Handle = &h
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]dom.User, error) {
	out := make([]dom.User, 0, len(f.users))
	for i := len(f.users) - 1; i >= 0; i-- {
		out = append(out, f.users[i])
	}
	return out, nil
}

func (f *fakeUserRepo) DeleteAll(ctx context.Context) error {
	f.users = nil
	f.nextID = 1
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "p1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.IsAdmin, "registration never grants admin")
	assert.Nil(t, created.Handle)
	assert.NotEqual(t, "p1", created.PasswordHash, "plaintext must not be stored")
	assert.True(t, auth.CheckPassword("p1", created.PasswordHash))

	u, err := svc.ValidateCredentials(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.False(t, u.IsAdmin)
}

func TestRegister_WithHandle(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "bob", "pw", "bobby")
	require.NoError(t, err)
	require.NotNil(t, u.Handle)
	assert.Equal(t, "bobby", *u.Handle)
}

func TestRegister_MissingFields(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"whitespace username", "   ", "pw"},
		{"empty password", "alice", ""},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, "")
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
	assert.Empty(t, r.users, "invalid registrations must not touch the store")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "p1", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "p2", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, r.users, 1, "store keeps exactly one row per username")

	// First credentials still work.
	_, err = svc.ValidateCredentials(ctx, "alice", "p1")
	assert.NoError(t, err)
}

func TestValidateCredentials_UniformFailure(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "p1", "")
	require.NoError(t, err)

	// Unknown username and wrong password must be indistinguishable.
	_, errUnknown := svc.ValidateCredentials(ctx, "nobody", "p1")
	_, errWrongPw := svc.ValidateCredentials(ctx, "alice", "wrong")
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestValidateCredentials_EmptyInput(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.ValidateCredentials(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ValidateCredentials(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateCredentials_StoreError(t *testing.T) {
	r := newFakeUserRepo()
	r.getErr = errors.New("connection refused")
	svc := NewUserService(r)

	_, err := svc.ValidateCredentials(context.Background(), "alice", "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials, "infrastructure failures are not credential failures")
}

func TestUpdateHandle(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "p1", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateHandle(ctx, u.ID, "wonderland"))
	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got.Handle)
	assert.Equal(t, "wonderland", *got.Handle)
}

func TestUpdateHandle_MissingHandle(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.UpdateHandle(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateHandle_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.UpdateHandle(context.Background(), 42, "x")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListUsers_NewestFirst(t *testing.T) {
	r := newFakeUserRepo()
	svc := NewUserService(r)
	ctx := context.Background()

	_, err := svc.Register(ctx, "first", "pw", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "second", "pw", "")
	require.NoError(t, err)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Username)
	assert.Equal(t, "first", list[1].Username)
}
