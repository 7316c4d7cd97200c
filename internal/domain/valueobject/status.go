package valueobject

import (
	"strings"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

type ProposalStatus string

const (
	ProposalStatusPending     ProposalStatus = "pending"
	ProposalStatusViewed      ProposalStatus = "viewed"
	ProposalStatusShortlisted ProposalStatus = "shortlisted"
	ProposalStatusAccepted    ProposalStatus = "accepted"
	ProposalStatusRejected    ProposalStatus = "rejected"
	ProposalStatusWithdrawn   ProposalStatus = "withdrawn"
)

// ProposalStatuses перечисляет допустимые статусы в порядке жизненного цикла.
var ProposalStatuses = []ProposalStatus{
	ProposalStatusPending,
	ProposalStatusViewed,
	ProposalStatusShortlisted,
	ProposalStatusAccepted,
	ProposalStatusRejected,
	ProposalStatusWithdrawn,
}

func (s ProposalStatus) IsValid() bool {
	for _, status := range ProposalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func NewProposalStatus(status string) (ProposalStatus, error) {
	s := ProposalStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("Invalid status. Must be one of: "+joinStatuses(), "status")
	}
	return s, nil
}

func joinStatuses() string {
	parts := make([]string, 0, len(ProposalStatuses))
	for _, s := range ProposalStatuses {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

// TransitionPolicy решает, разрешён ли переход между статусами предложения.
type TransitionPolicy func(from, to ProposalStatus) error

// AllowAllTransitions разрешает любой переход, включая в тот же статус.
func AllowAllTransitions(from, to ProposalStatus) error {
	return nil
}

// TransitionGraph строит политику по явному графу переходов.
// Переход в тот же статус разрешён всегда.
func TransitionGraph(graph map[ProposalStatus][]ProposalStatus) TransitionPolicy {
	return func(from, to ProposalStatus) error {
		if from == to {
			return nil
		}
		for _, allowed := range graph[from] {
			if allowed == to {
				return nil
			}
		}
		return apperror.Validation("Status transition from "+string(from)+" to "+string(to)+" is not allowed", "status")
	}
}

type ProposalType string

const (
	ProposalTypeFixed  ProposalType = "fixed"
	ProposalTypeHourly ProposalType = "hourly"
)

func (t ProposalType) IsValid() bool {
	return t == ProposalTypeFixed || t == ProposalTypeHourly
}

func NewProposalType(value string) (ProposalType, error) {
	t := ProposalType(value)
	if !t.IsValid() {
		return "", apperror.Validation("Invalid proposal_type. Must be one of: fixed, hourly", "proposal_type")
	}
	return t, nil
}

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusProcessing ProjectStatus = "processing"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPending, ProjectStatusProcessing, ProjectStatusCompleted:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusUnpaid  InvoiceStatus = "Unpaid"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusUnpaid:
		return true
	}
	return false
}
