package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// ProjectRepository отвечает за таблицу projects.
type ProjectRepository struct {
	store *common.Store[models.Project]
}

// NewProjectRepository создаёт экземпляр репозитория.
func NewProjectRepository(db *sqlx.DB, schema common.Provisioner) *ProjectRepository {
	return &ProjectRepository{store: common.NewStore[models.Project](db, schema, projectsTable)}
}

// Create создаёт проект владельца ownerID.
func (r *ProjectRepository) Create(ctx context.Context, ownerID int64, values common.Values) (*models.Project, error) {
	return r.store.Insert(ctx, values, common.Values{"user_id": ownerID})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	return r.store.GetBy(ctx, "id", id)
}

func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	return r.store.List(ctx, "created_at DESC, id DESC")
}

// ListByOwner возвращает проекты пользователя, новые первыми.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	return r.store.ListBy(ctx, "user_id", ownerID, "created_at DESC, id DESC")
}

func (r *ProjectRepository) Update(ctx context.Context, id int64, values common.Values) (*models.Project, error) {
	return r.store.UpdateBy(ctx, "id", id, values)
}

// Delete удаляет проект; его предложения удаляются каскадно.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) (*models.Project, error) {
	return r.store.DeleteBy(ctx, "id", id)
}
