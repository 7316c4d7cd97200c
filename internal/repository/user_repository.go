package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	store *common.Store[models.User]
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB, schema common.Provisioner) *UserRepository {
	return &UserRepository{store: common.NewStore[models.User](db, schema, usersTable)}
}

// Create сохраняет пользователя с уже захешированным паролем.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	user, err := r.store.Insert(ctx, common.Values{
		"name":     name,
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": passwordHash,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("user repository: create %w", err)
	}
	return user, nil
}

// GetByEmail возвращает пользователя по email или nil, если его нет.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.store.GetBy(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID возвращает пользователя по идентификатору или nil.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.store.GetBy(ctx, "id", id)
}

// List возвращает всех пользователей, новые первыми.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.store.List(ctx, "created_at DESC, id DESC")
}

// Update частично обновляет имя и email.
func (r *UserRepository) Update(ctx context.Context, id int64, values common.Values) (*models.User, error) {
	if email, ok := values["email"].(string); ok {
		patched := make(common.Values, len(values))
		for k, v := range values {
			patched[k] = v
		}
		patched["email"] = strings.ToLower(strings.TrimSpace(email))
		values = patched
	}
	return r.store.UpdateBy(ctx, "id", id, values)
}

// Delete удаляет пользователя; дочерние записи удаляются каскадно.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	return r.store.DeleteBy(ctx, "id", id)
}
