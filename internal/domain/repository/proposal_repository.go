package repository

import (
	"context"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
)

// ProposalRepository хранит предложения. Отсутствие строки возвращается как (nil, nil).
type ProposalRepository interface {
	// Create сохраняет новое предложение и заполняет его ID.
	Create(ctx context.Context, proposal *entity.Proposal) error
	// FindByID возвращает предложение с именами фрилансера и клиента и названием проекта.
	FindByID(ctx context.Context, id int64) (*entity.Proposal, error)
	// List возвращает все предложения, новые первыми.
	List(ctx context.Context) ([]*entity.Proposal, error)
	// Update применяет частичное обновление по белому списку колонок.
	// Смена status этим путём не попадает в журнал активности.
	Update(ctx context.Context, id int64, values map[string]any) (*entity.Proposal, error)
	// AppendStatus одним запросом меняет статус и дописывает запись в журнал.
	AppendStatus(ctx context.Context, id int64, entry entity.ActivityEntry) (*entity.Proposal, error)
	// Delete удаляет предложение и возвращает удалённую строку.
	Delete(ctx context.Context, id int64) (*entity.Proposal, error)
}
