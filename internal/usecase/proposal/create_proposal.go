package proposal

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/domain/repository"
	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// Clock возвращает текущее время; подменяется в тестах.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type CreateProposalInput struct {
	FreelancerID      int64
	ClientID          int64
	ProjectID         int64
	Title             string
	Description       string
	Amount            float64
	ProposalType      string
	EstimatedDuration *string
	CoverLetter       *string
	Attachments       []string
}

// missingFields перечисляет все незаполненные обязательные поля, а не только первое.
func (in CreateProposalInput) missingFields() []string {
	var missing []string
	if in.ClientID == 0 {
		missing = append(missing, "client_id")
	}
	if in.ProjectID == 0 {
		missing = append(missing, "project_id")
	}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	// сумма, округляющаяся до нуля центов, сохранилась бы как 0
	if math.Round(in.Amount*100) == 0 {
		missing = append(missing, "amount")
	}
	if strings.TrimSpace(in.ProposalType) == "" {
		missing = append(missing, "proposal_type")
	}
	return missing
}

type CreateProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	now          Clock
}

func NewCreateProposalUseCase(proposalRepo repository.ProposalRepository) *CreateProposalUseCase {
	return &CreateProposalUseCase{proposalRepo: proposalRepo, now: systemClock}
}

// WithClock задаёт источник времени.
func (uc *CreateProposalUseCase) WithClock(now Clock) *CreateProposalUseCase {
	uc.now = now
	return uc
}

func (uc *CreateProposalUseCase) Execute(ctx context.Context, input CreateProposalInput) (*entity.Proposal, error) {
	if missing := input.missingFields(); len(missing) > 0 {
		return nil, apperror.MissingFields(missing)
	}

	proposalType, err := valueobject.NewProposalType(input.ProposalType)
	if err != nil {
		return nil, err
	}
	amount, err := valueobject.NewAmount("amount", input.Amount)
	if err != nil {
		return nil, err
	}

	proposal := entity.NewProposal(entity.NewProposalParams{
		FreelancerID:      input.FreelancerID,
		ClientID:          input.ClientID,
		ProjectID:         input.ProjectID,
		Title:             input.Title,
		Description:       input.Description,
		Amount:            amount,
		ProposalType:      proposalType,
		EstimatedDuration: input.EstimatedDuration,
		CoverLetter:       input.CoverLetter,
		Attachments:       input.Attachments,
	}, uc.now())

	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	return proposal, nil
}
