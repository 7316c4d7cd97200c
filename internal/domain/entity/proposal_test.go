package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
)

func TestNewProposal_SeedsActivityLog(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProposal(NewProposalParams{
		FreelancerID: 3,
		ClientID:     5,
		ProjectID:    9,
		Title:        "API",
		Description:  "Build API",
		Amount:       1500,
		ProposalType: valueobject.ProposalTypeFixed,
	}, now)

	assert.Equal(t, valueobject.ProposalStatusPending, p.Status)
	require.Len(t, p.ActivityLog, 1)
	assert.Equal(t, ActionSubmitted, p.ActivityLog[0].Action)
	assert.Equal(t, "Proposal submitted by freelancer", p.ActivityLog[0].Description)
	assert.Equal(t, now, p.AppliedDate)
	assert.Equal(t, now, p.LastActivityDate)
	assert.NotNil(t, p.Attachments)
}

func TestApplyStatus_AppendsAndMovesLastActivity(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewProposal(NewProposalParams{Title: "t", Description: "d", Amount: 1, ProposalType: valueobject.ProposalTypeHourly}, start)

	later := start.Add(time.Hour)
	p.ApplyStatus(NewStatusActivity(valueobject.ProposalStatusAccepted, "Great fit", later))

	require.Len(t, p.ActivityLog, 2)
	last, ok := p.LastActivity()
	require.True(t, ok)
	assert.Equal(t, "Great fit", last.Description)
	assert.Equal(t, ActionStatusUpdated, last.Action)
	assert.Equal(t, valueobject.ProposalStatusAccepted, p.Status)
	assert.Equal(t, later, p.LastActivityDate)
}

func TestNewStatusActivity_DefaultDescription(t *testing.T) {
	entry := NewStatusActivity(valueobject.ProposalStatusViewed, "", time.Now())
	assert.Equal(t, "Status updated to viewed", entry.Description)
}
