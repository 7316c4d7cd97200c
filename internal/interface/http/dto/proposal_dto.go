package dto

import (
	"time"

	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/usecase/proposal"
)

// CreateProposalRequest тело POST /proposals/create/:userId.
// Обязательность полей проверяет use case, чтобы вернуть все пропуски сразу.
type CreateProposalRequest struct {
	ClientID          FlexInt64   `json:"client_id"`
	ProjectID         FlexInt64   `json:"project_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Amount            FlexFloat64 `json:"amount"`
	ProposalType      string   `json:"proposal_type"`
	EstimatedDuration *string  `json:"estimated_duration"`
	CoverLetter       *string  `json:"cover_letter"`
	Attachments       []string `json:"attachments"`
}

func (r CreateProposalRequest) ToInput(freelancerID int64) proposal.CreateProposalInput {
	return proposal.CreateProposalInput{
		FreelancerID:      freelancerID,
		ClientID:          int64(r.ClientID),
		ProjectID:         int64(r.ProjectID),
		Title:             r.Title,
		Description:       r.Description,
		Amount:            float64(r.Amount),
		ProposalType:      r.ProposalType,
		EstimatedDuration: r.EstimatedDuration,
		CoverLetter:       r.CoverLetter,
		Attachments:       r.Attachments,
	}
}

type UpdateProposalStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type ActivityEntryResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

type ProposalResponse struct {
	ID                int64                   `json:"id"`
	FreelancerID      int64                   `json:"freelancer_id"`
	ClientID          int64                   `json:"client_id"`
	ProjectID         int64                   `json:"project_id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description"`
	Amount            float64                 `json:"amount"`
	ProposalType      string                  `json:"proposal_type"`
	EstimatedDuration *string                 `json:"estimated_duration"`
	Status            string                  `json:"status"`
	CoverLetter       *string                 `json:"cover_letter"`
	Attachments       []string                `json:"attachments"`
	AppliedDate       time.Time               `json:"applied_date"`
	LastActivityDate  time.Time               `json:"last_activity_date"`
	ActivityLog       []ActivityEntryResponse `json:"activity_log"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	FreelancerName    *string                 `json:"freelancer_name,omitempty"`
	ClientName        *string                 `json:"client_name,omitempty"`
	ProjectTitle      *string                 `json:"project_title,omitempty"`
}

func ToProposalResponse(p *entity.Proposal) ProposalResponse {
	log := make([]ActivityEntryResponse, 0, len(p.ActivityLog))
	for _, e := range p.ActivityLog {
		log = append(log, ActivityEntryResponse{
			Timestamp:   e.Timestamp,
			Action:      e.Action,
			Status:      string(e.Status),
			Description: e.Description,
		})
	}
	attachments := p.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	return ProposalResponse{
		ID:                p.ID,
		FreelancerID:      p.FreelancerID,
		ClientID:          p.ClientID,
		ProjectID:         p.ProjectID,
		Title:             p.Title,
		Description:       p.Description,
		Amount:            p.Amount.Float64(),
		ProposalType:      string(p.ProposalType),
		EstimatedDuration: p.EstimatedDuration,
		Status:            string(p.Status),
		CoverLetter:       p.CoverLetter,
		Attachments:       attachments,
		AppliedDate:       p.AppliedDate,
		LastActivityDate:  p.LastActivityDate,
		ActivityLog:       log,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		FreelancerName:    p.FreelancerName,
		ClientName:        p.ClientName,
		ProjectTitle:      p.ProjectTitle,
	}
}

func ToProposalResponses(proposals []*entity.Proposal) []ProposalResponse {
	responses := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		responses = append(responses, ToProposalResponse(p))
	}
	return responses
}
