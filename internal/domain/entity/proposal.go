package entity

import (
	"time"

	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
)

const (
	ActionSubmitted     = "submitted"
	ActionStatusUpdated = "status_updated"

	submittedDescription = "Proposal submitted by freelancer"
)

// ActivityEntry запись журнала активности предложения.
type ActivityEntry struct {
	Timestamp   time.Time                  `json:"timestamp"`
	Action      string                     `json:"action"`
	Status      valueobject.ProposalStatus `json:"status"`
	Description string                     `json:"description"`
}

type Proposal struct {
	ID                int64
	FreelancerID      int64
	ClientID          int64
	ProjectID         int64
	Title             string
	Description       string
	Amount            valueobject.Amount
	ProposalType      valueobject.ProposalType
	EstimatedDuration *string
	Status            valueobject.ProposalStatus
	CoverLetter       *string
	Attachments       []string
	AppliedDate       time.Time
	LastActivityDate  time.Time
	ActivityLog       []ActivityEntry
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Заполняются только при чтении с join.
	FreelancerName *string
	ClientName     *string
	ProjectTitle   *string
}

// NewProposalParams проверенные поля нового предложения.
type NewProposalParams struct {
	FreelancerID      int64
	ClientID          int64
	ProjectID         int64
	Title             string
	Description       string
	Amount            valueobject.Amount
	ProposalType      valueobject.ProposalType
	EstimatedDuration *string
	CoverLetter       *string
	Attachments       []string
}

// NewProposal создаёт предложение в статусе pending с первой записью журнала.
func NewProposal(p NewProposalParams, now time.Time) *Proposal {
	attachments := p.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	entry := ActivityEntry{
		Timestamp:   now,
		Action:      ActionSubmitted,
		Status:      valueobject.ProposalStatusPending,
		Description: submittedDescription,
	}

	return &Proposal{
		FreelancerID:      p.FreelancerID,
		ClientID:          p.ClientID,
		ProjectID:         p.ProjectID,
		Title:             p.Title,
		Description:       p.Description,
		Amount:            p.Amount,
		ProposalType:      p.ProposalType,
		EstimatedDuration: p.EstimatedDuration,
		Status:            valueobject.ProposalStatusPending,
		CoverLetter:       p.CoverLetter,
		Attachments:       attachments,
		AppliedDate:       now,
		LastActivityDate:  now,
		ActivityLog:       []ActivityEntry{entry},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NewStatusActivity формирует запись о смене статуса.
// Пустые notes заменяются на "Status updated to <status>".
func NewStatusActivity(status valueobject.ProposalStatus, notes string, now time.Time) ActivityEntry {
	description := notes
	if description == "" {
		description = "Status updated to " + string(status)
	}
	return ActivityEntry{
		Timestamp:   now,
		Action:      ActionStatusUpdated,
		Status:      status,
		Description: description,
	}
}

// ApplyStatus меняет статус и дописывает запись в журнал.
func (p *Proposal) ApplyStatus(entry ActivityEntry) {
	p.Status = entry.Status
	p.ActivityLog = append(p.ActivityLog, entry)
	p.LastActivityDate = entry.Timestamp
	p.UpdatedAt = entry.Timestamp
}

// LastActivity возвращает последнюю запись журнала.
func (p *Proposal) LastActivity() (ActivityEntry, bool) {
	if len(p.ActivityLog) == 0 {
		return ActivityEntry{}, false
	}
	return p.ActivityLog[len(p.ActivityLog)-1], true
}
