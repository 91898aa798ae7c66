package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/textil-api/internal/application/auth"
	"github.com/jhoicas/textil-api/internal/application/dto"
	"github.com/jhoicas/textil-api/internal/domain"
	"github.com/jhoicas/textil-api/internal/domain/entity"
	"github.com/jhoicas/textil-api/internal/infrastructure/memory"
	"github.com/jhoicas/textil-api/pkg/jwt"
)

const secret = "secreto-de-pruebas"

func newAuth(t *testing.T) (*memory.Store, *auth.AuthUseCase) {
	t.Helper()
	db := memory.New()
	require.NoError(t, db.Stores().Create(context.Background(), &entity.Store{ID: "centro", Name: "Centro", Active: true}))
	return db, auth.NewAuthUseCase(db.Users(), db.Stores(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "textil-api"})
}

func TestRegisterUser_NormalizaEmailYNoExponeHash(t *testing.T) {
	db, uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "  Ana@Textil.CO ", Password: "clave-segura", Role: entity.RoleVendedor, StoreID: "centro"})
	require.NoError(t, err)
	assert.Equal(t, "ana@textil.co", u.Email)
	assert.Equal(t, "ana@textil.co", u.Name)
	assert.Equal(t, entity.UserStatusActive, u.Status)

	stored, err := db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "clave-segura", stored.PasswordHash)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "ana@textil.co", Password: "otra-clave", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	cases := []struct {
		name string
		in   dto.CreateUserRequest
		want error
	}{
		{"email inválido", dto.CreateUserRequest{Email: "sin-arroba", Password: "12345678", Role: entity.RoleAdmin}, domain.ErrInvalidInput},
		{"password corta", dto.CreateUserRequest{Email: "a@b.co", Password: "1234567", Role: entity.RoleAdmin}, domain.ErrInvalidInput},
		{"rol desconocido", dto.CreateUserRequest{Email: "a@b.co", Password: "12345678", Role: "gerente"}, domain.ErrInvalidInput},
		{"vendedor sin tienda", dto.CreateUserRequest{Email: "a@b.co", Password: "12345678", Role: entity.RoleVendedor}, domain.ErrInvalidInput},
		{"rol por defecto exige tienda", dto.CreateUserRequest{Email: "a@b.co", Password: "12345678"}, domain.ErrInvalidInput},
		{"tienda inexistente", dto.CreateUserRequest{Email: "a@b.co", Password: "12345678", Role: entity.RoleTaller, StoreID: "sur"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLogin_EmiteTokenConRolYTienda(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "vende@textil.co", Password: "clave-segura", Role: entity.RoleVendedor, StoreID: "centro"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "VENDE@textil.co", Password: "clave-segura"})
	require.NoError(t, err)

	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, id.UserID)
	assert.Equal(t, entity.RoleVendedor, id.Role)
	assert.Equal(t, "centro", id.StoreID)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "vende@textil.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@textil.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	db, uc := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "taller@textil.co", Password: "clave-segura", Role: entity.RoleTaller})
	require.NoError(t, err)

	stored, err := db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.Status = entity.UserStatusInactive
	require.NoError(t, db.Users().Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "taller@textil.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestChangePassword(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "admin@textil.co", Password: "clave-vieja", Role: entity.RoleAdmin})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.ChangePassword(ctx, u.ID, "corta"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.ChangePassword(ctx, "nope", "clave-nueva"), domain.ErrUserNotFound)
	require.NoError(t, uc.ChangePassword(ctx, u.ID, "clave-nueva"))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@textil.co", Password: "clave-vieja"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@textil.co", Password: "clave-nueva"})
	assert.NoError(t, err)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@textil.co", me.Email)
	_, err = uc.Me(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
