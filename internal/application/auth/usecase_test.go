package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shreyas100100/Expense-Tracker/internal/application/dto"
	"github.com/Shreyas100100/Expense-Tracker/internal/domain"
	"github.com/Shreyas100100/Expense-Tracker/internal/infrastructure/memory"
	"github.com/Shreyas100100/Expense-Tracker/pkg/jwt"
)

const secret = "test-secret"

func newUseCase() *AuthUseCase {
	return NewAuthUseCase(memory.NewStore().Users(), JWTConfig{
		Secret: secret, ExpMinutes: 30, Issuer: "test",
	}).WithBcryptCost(bcrypt.MinCost)
}

func TestSignup_NormalizaEmailYNoExponeHash(t *testing.T) {
	uc := newUseCase()
	user, err := uc.Signup(context.Background(), dto.SignupRequest{Email: "  Ravi@Example.COM ", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
}

func TestSignup_Validaciones(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "no-es-email", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "a@b.co", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "menos de 6 caracteres")

	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "a@b.co", Password: "123456"})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, dto.SignupRequest{Email: "A@B.CO", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Signup(ctx, dto.SignupRequest{Email: "owner@shop.test", Password: "secreto"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "OWNER@shop.test", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, 30*60, out.ExpiresIn)
	assert.Equal(t, created.ID, out.User.ID)

	userID, email, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "owner@shop.test", email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.Signup(ctx, dto.SignupRequest{Email: "owner@shop.test", Password: "secreto"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "owner@shop.test", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@shop.test", Password: "secreto"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMe(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.Signup(ctx, dto.SignupRequest{Email: "owner@shop.test", Password: "secreto"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@shop.test", me.Email)

	_, err = uc.Me(ctx, "otro")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.Me(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
