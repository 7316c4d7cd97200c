package proposal

import (
	"context"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/domain/repository"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

type GetProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewGetProposalUseCase(proposalRepo repository.ProposalRepository) *GetProposalUseCase {
	return &GetProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *GetProposalUseCase) Execute(ctx context.Context, proposalID int64) (*entity.Proposal, error) {
	p, err := uc.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrProposalNotFound
	}
	return p, nil
}

type ListProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewListProposalsUseCase(proposalRepo repository.ProposalRepository) *ListProposalsUseCase {
	return &ListProposalsUseCase{proposalRepo: proposalRepo}
}

func (uc *ListProposalsUseCase) Execute(ctx context.Context) ([]*entity.Proposal, error) {
	return uc.proposalRepo.List(ctx)
}

type DeleteProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewDeleteProposalUseCase(proposalRepo repository.ProposalRepository) *DeleteProposalUseCase {
	return &DeleteProposalUseCase{proposalRepo: proposalRepo}
}

// Execute удаляет предложение и возвращает удалённую запись.
func (uc *DeleteProposalUseCase) Execute(ctx context.Context, proposalID int64) (*entity.Proposal, error) {
	deleted, err := uc.proposalRepo.Delete(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, apperror.ErrProposalNotFound
	}
	return deleted, nil
}
