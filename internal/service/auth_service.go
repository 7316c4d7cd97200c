package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/validation"
)

// UserStore описывает зависимости AuthService от слоя хранилища.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// BcryptHasher Hasher на bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// AuthService инкапсулирует регистрацию и вход.
type AuthService struct {
	users  UserStore
	hasher Hasher
	tokens *TokenManager
}

// SignupInput содержит данные пользователя при регистрации.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult пользователь и выпущенный токен.
type LoginResult struct {
	User  *models.User
	Token string
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(users UserStore, hasher Hasher, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Signup: проверка уникальности email, хеш пароля, создание пользователя.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.RequireFields(map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}, "name", "email", "password"); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("name", in.Name, 1, validation.MaxNameLength); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrEmailTaken
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	user, err := s.users.Create(ctx, in.Name, in.Email, digest)
	if err != nil {
		// параллельная регистрация с тем же email
		if apperror.IsConflict(err) {
			return nil, apperror.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login: поиск по email, проверка пароля, выпуск токена с заданным ttl.
// Отсутствие пользователя возвращается как ErrUserNotFound, неверный пароль как ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, ttl time.Duration) (*LoginResult, error) {
	if err := validation.RequireFields(map[string]string{
		"email":    email,
		"password": password,
	}, "email", "password"); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

// Me возвращает пользователя по идентификатору из токена.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}
