package proposal

import (
	"context"
	"strconv"
	"strings"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/domain/repository"
	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

// UpdateProposalUseCase частичное обновление предложения.
// Может сменить status, но журнал активности при этом не пополняется
// и last_activity_date не двигается. Для смены статуса с записью в журнал
// используется UpdateProposalStatusUseCase.
type UpdateProposalUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewUpdateProposalUseCase(proposalRepo repository.ProposalRepository) *UpdateProposalUseCase {
	return &UpdateProposalUseCase{proposalRepo: proposalRepo}
}

func (uc *UpdateProposalUseCase) Execute(ctx context.Context, proposalID int64, values map[string]any) (*entity.Proposal, error) {
	normalized, err := normalizeProposalValues(values)
	if err != nil {
		return nil, err
	}

	updated, err := uc.proposalRepo.Update(ctx, proposalID, normalized)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.ErrProposalNotFound
	}
	return updated, nil
}

// normalizeProposalValues проверяет перечисления и сумму, если они переданы.
// Остальные ключи пропускаются как есть: лишние отбросит белый список таблицы.
func normalizeProposalValues(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}

	if raw, ok := values["status"]; ok {
		s, _ := raw.(string)
		status, err := valueobject.NewProposalStatus(s)
		if err != nil {
			return nil, err
		}
		out["status"] = string(status)
	}

	if raw, ok := values["proposal_type"]; ok {
		s, _ := raw.(string)
		proposalType, err := valueobject.NewProposalType(s)
		if err != nil {
			return nil, err
		}
		out["proposal_type"] = string(proposalType)
	}

	if raw, ok := values["amount"]; ok {
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		amount, err := valueobject.NewAmount("amount", f)
		if err != nil {
			return nil, err
		}
		out["amount"] = amount.Float64()
	}

	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, nil
		}
	}
	return 0, apperror.Validation("Invalid amount", "amount")
}
