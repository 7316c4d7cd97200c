package proposal

import (
	"context"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/domain/repository"
	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// UpdateProposalStatusUseCase меняет статус и дописывает ровно одну запись в журнал активности.
type UpdateProposalStatusUseCase struct {
	proposalRepo repository.ProposalRepository
	policy       valueobject.TransitionPolicy
	now          Clock
}

// NewUpdateProposalStatusUseCase создаёт use case. nil policy разрешает любой переход.
func NewUpdateProposalStatusUseCase(proposalRepo repository.ProposalRepository, policy valueobject.TransitionPolicy) *UpdateProposalStatusUseCase {
	if policy == nil {
		policy = valueobject.AllowAllTransitions
	}
	return &UpdateProposalStatusUseCase{
		proposalRepo: proposalRepo,
		policy:       policy,
		now:          systemClock,
	}
}

func (uc *UpdateProposalStatusUseCase) WithClock(now Clock) *UpdateProposalStatusUseCase {
	uc.now = now
	return uc
}

func (uc *UpdateProposalStatusUseCase) Execute(ctx context.Context, proposalID int64, newStatus, notes string) (*entity.Proposal, error) {
	status, err := valueobject.NewProposalStatus(newStatus)
	if err != nil {
		return nil, err
	}

	current, err := uc.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.ErrProposalNotFound
	}

	if err := uc.policy(current.Status, status); err != nil {
		return nil, err
	}

	entry := entity.NewStatusActivity(status, notes, uc.now())
	updated, err := uc.proposalRepo.AppendStatus(ctx, proposalID, entry)
	if err != nil {
		return nil, err
	}
	// Предложение могло быть удалено между проверкой и записью.
	if updated == nil {
		return nil, apperror.ErrProposalNotFound
	}

	return updated, nil
}
