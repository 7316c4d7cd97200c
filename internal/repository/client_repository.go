package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// ClientRepository отвечает за таблицу clients.
type ClientRepository struct {
	store *common.Store[models.Client]
}

func NewClientRepository(db *sqlx.DB, schema common.Provisioner) *ClientRepository {
	return &ClientRepository{store: common.NewStore[models.Client](db, schema, clientsTable)}
}

func (r *ClientRepository) Create(ctx context.Context, values common.Values) (*models.Client, error) {
	return r.store.Insert(ctx, values, nil)
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	return r.store.GetBy(ctx, "id", id)
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	return r.store.List(ctx, "created_at DESC, id DESC")
}

func (r *ClientRepository) Update(ctx context.Context, id int64, values common.Values) (*models.Client, error) {
	return r.store.UpdateBy(ctx, "id", id, values)
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) (*models.Client, error) {
	return r.store.DeleteBy(ctx, "id", id)
}
