package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// InvoiceRepository отвечает за таблицу invoices.
type InvoiceRepository struct {
	store *common.Store[models.Invoice]
}

func NewInvoiceRepository(db *sqlx.DB, schema common.Provisioner) *InvoiceRepository {
	return &InvoiceRepository{store: common.NewStore[models.Invoice](db, schema, invoicesTable)}
}

// Create сохраняет счёт; повтор invoice_number даёт ошибку уникальности.
func (r *InvoiceRepository) Create(ctx context.Context, values common.Values) (*models.Invoice, error) {
	return r.store.Insert(ctx, values, nil)
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	return r.store.GetBy(ctx, "id", id)
}

// List возвращает счета, последние по дате выставления первыми.
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	return r.store.List(ctx, "date_issued DESC, id DESC")
}

func (r *InvoiceRepository) Update(ctx context.Context, id int64, values common.Values) (*models.Invoice, error) {
	return r.store.UpdateBy(ctx, "id", id, values)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) (*models.Invoice, error) {
	return r.store.DeleteBy(ctx, "id", id)
}
