package auth

import (
	"context"
	"testing"
	"time"

	"cerebro/internal/store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	nextID int64
	users  map[string]*model.UserModel
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.UserModel{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.UserModel) error {
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.UserModel, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*model.UserModel, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func TestService_RegisterLoginVerify(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, "test-secret", 30*time.Minute)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Trader@Example.com", "hunter22", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "trader@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.HashedPassword)
	assert.True(t, user.IsActive)

	token, err := svc.Login(ctx, "trader@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "trader@example.com", email)

	current, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestService_RegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), "test-secret", time.Minute)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "A@B.COM", "pw2", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_RegisterRequiresEmailAndPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), "test-secret", time.Minute)
	_, err := svc.Register(context.Background(), "", "pw", "")
	assert.Error(t, err)
	_, err = svc.Register(context.Background(), "a@b.com", "", "")
	assert.Error(t, err)
}

func TestService_LoginFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, "test-secret", time.Minute)
	ctx := context.Background()
	_, err := svc.Register(ctx, "a@b.com", "correct", "")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@b.com", "correct")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_VerifyTokenFailures(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, "test-secret", 30*time.Minute)
	ctx := context.Background()
	_, err := svc.Register(ctx, "a@b.com", "pw", "")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(repo, "other-secret", 30*time.Minute)
		_, err := other.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		// jump the verifier clock past the ttl
		svc.nowFn = func() time.Time { return time.Now().Add(time.Hour) }
		defer func() { svc.nowFn = time.Now }()
		_, err := svc.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
