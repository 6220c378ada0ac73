// Package auth gestiona usuarios del tablero (admin, manager, cashier) y el login con JWT.
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/jhoicas/nibso-dashboard/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: alta de usuarios y login.
type AuthUseCase struct {
	mu     sync.RWMutex
	users  []entity.User
	slot   *persist.Slot[[]entity.User]
	jwtCfg JWTConfig
	cost   int
	now    func() time.Time
}

// NewAuthUseCase carga los usuarios desde el store.
func NewAuthUseCase(ctx context.Context, store repository.KeyValueStore, jwtCfg JWTConfig) (*AuthUseCase, error) {
	slot := persist.NewSlot[[]entity.User](store, persist.KeyUsers)
	users, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{users: users, slot: slot, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, now: time.Now}, nil
}

// EnsureAdmin crea el administrador inicial si no hay ningún usuario.
// created=false si ya existían usuarios o password está vacío.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	uc.mu.RLock()
	n := len(uc.users)
	uc.mu.RUnlock()
	if n > 0 || password == "" {
		return false, nil
	}
	if _, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		Email: email, Password: password, Name: "Administrador", Role: entity.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}

// CreateUser hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: email y password (mínimo 6 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = email
	}
	now := uc.now()
	user := entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, u := range uc.users {
		if u.Email == email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	uc.users = append(uc.users, user)
	if err := uc.slot.Save(ctx, uc.users); err != nil {
		return nil, err
	}
	return toUserResponse(&user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user := uc.findByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// List usuarios en orden de alta.
func (uc *AuthUseCase) List() []dto.UserResponse {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]dto.UserResponse, 0, len(uc.users))
	for i := range uc.users {
		out = append(out, *toUserResponse(&uc.users[i]))
	}
	return out
}

func (uc *AuthUseCase) findByEmail(email string) *entity.User {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for i := range uc.users {
		if uc.users[i].Email == email {
			u := uc.users[i]
			return &u
		}
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
