package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/JULEEP/securitybackend/internal/db"
	"github.com/JULEEP/securitybackend/internal/domain/entity"
	"github.com/JULEEP/securitybackend/internal/domain/valueobject"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// proposalsTable белый список частичного обновления предложения.
var proposalsTable = common.Table{
	Name: db.TableProposals,
	Columns: []common.Column{
		{Name: "title"},
		{Name: "description"},
		{Name: "amount"},
		{Name: "proposal_type"},
		{Name: "estimated_duration"},
		{Name: "status"},
		{Name: "cover_letter"},
		{Name: "attachments", Kind: common.TextArrayColumn},
	},
	Mutable: []string{
		"title", "description", "amount", "proposal_type",
		"estimated_duration", "status", "cover_letter", "attachments",
	},
}

const selectProposalWithNames = `
	SELECT p.*, f.name AS freelancer_name, c.name AS client_name, pr.title AS project_title
	FROM proposals p
	LEFT JOIN users f ON f.id = p.freelancer_id
	LEFT JOIN users c ON c.id = p.client_id
	LEFT JOIN projects pr ON pr.id = p.project_id
`

type ProposalRepositoryAdapter struct {
	db     *sqlx.DB
	schema common.Provisioner
}

func NewProposalRepositoryAdapter(db *sqlx.DB, schema common.Provisioner) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{db: db, schema: schema}
}

func (r *ProposalRepositoryAdapter) ensure(ctx context.Context) error {
	if r.schema == nil {
		return nil
	}
	return r.schema.EnsureTable(ctx, db.TableProposals)
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	if err := r.ensure(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO proposals (
			freelancer_id, client_id, project_id, title, description, amount, proposal_type,
			estimated_duration, status, cover_letter, attachments, applied_date,
			last_activity_date, activity_log, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := r.db.GetContext(ctx, &proposal.ID, query,
		proposal.FreelancerID, proposal.ClientID, proposal.ProjectID, proposal.Title,
		proposal.Description, proposal.Amount.Float64(), string(proposal.ProposalType),
		proposal.EstimatedDuration, string(proposal.Status), proposal.CoverLetter,
		pq.Array(proposal.Attachments), proposal.AppliedDate, proposal.LastActivityDate,
		datatypes.JSONSlice[entity.ActivityEntry](proposal.ActivityLog),
		proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("proposals: create: %w", err)
	}
	return nil
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	var p proposalRow
	if err := r.db.GetContext(ctx, &p, selectProposalWithNames+" WHERE p.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("proposals: find by id: %w", err)
	}
	return p.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) List(ctx context.Context) ([]*entity.Proposal, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	var rows []proposalRow
	if err := r.db.SelectContext(ctx, &rows, selectProposalWithNames+" ORDER BY p.created_at DESC, p.id DESC"); err != nil {
		return nil, fmt.Errorf("proposals: list: %w", err)
	}
	return toProposalEntities(rows), nil
}

func (r *ProposalRepositoryAdapter) Update(ctx context.Context, id int64, values map[string]any) (*entity.Proposal, error) {
	query, args, err := proposalsTable.BuildUpdate(values, common.Key{Column: "id", Value: id})
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, "update", query, args...)
}

func (r *ProposalRepositoryAdapter) AppendStatus(ctx context.Context, id int64, entry entity.ActivityEntry) (*entity.Proposal, error) {
	// Статус и журнал меняются одним UPDATE: конкурентные записи не теряются.
	query := `
		UPDATE proposals
		SET status = $1,
			activity_log = activity_log || $2::jsonb,
			last_activity_date = $3,
			updated_at = $3
		WHERE id = $4
		RETURNING *
	`
	appended := datatypes.JSONSlice[entity.ActivityEntry]{entry}
	return r.getOne(ctx, "append status", query, string(entry.Status), appended, entry.Timestamp, id)
}

func (r *ProposalRepositoryAdapter) Delete(ctx context.Context, id int64) (*entity.Proposal, error) {
	return r.getOne(ctx, "delete", "DELETE FROM proposals WHERE id = $1 RETURNING *", id)
}

func (r *ProposalRepositoryAdapter) getOne(ctx context.Context, op, query string, args ...any) (*entity.Proposal, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	var p proposalRow
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("proposals: %s: %w", op, err)
	}
	return p.toEntity(), nil
}

type proposalRow struct {
	ID                int64                                    `db:"id"`
	FreelancerID      int64                                    `db:"freelancer_id"`
	ClientID          int64                                    `db:"client_id"`
	ProjectID         int64                                    `db:"project_id"`
	Title             string                                   `db:"title"`
	Description       string                                   `db:"description"`
	Amount            float64                                  `db:"amount"`
	ProposalType      string                                   `db:"proposal_type"`
	EstimatedDuration *string                                  `db:"estimated_duration"`
	Status            string                                   `db:"status"`
	CoverLetter       *string                                  `db:"cover_letter"`
	Attachments       pq.StringArray                           `db:"attachments"`
	AppliedDate       time.Time                                `db:"applied_date"`
	LastActivityDate  time.Time                                `db:"last_activity_date"`
	ActivityLog       datatypes.JSONSlice[entity.ActivityEntry] `db:"activity_log"`
	CreatedAt         time.Time                                `db:"created_at"`
	UpdatedAt         time.Time                                `db:"updated_at"`
	FreelancerName    *string                                  `db:"freelancer_name"`
	ClientName        *string                                  `db:"client_name"`
	ProjectTitle      *string                                  `db:"project_title"`
}

func (p *proposalRow) toEntity() *entity.Proposal {
	attachments := []string(p.Attachments)
	if attachments == nil {
		attachments = []string{}
	}
	log := []entity.ActivityEntry(p.ActivityLog)
	if log == nil {
		log = []entity.ActivityEntry{}
	}
	return &entity.Proposal{
		ID:                p.ID,
		FreelancerID:      p.FreelancerID,
		ClientID:          p.ClientID,
		ProjectID:         p.ProjectID,
		Title:             p.Title,
		Description:       p.Description,
		Amount:            valueobject.Amount(p.Amount),
		ProposalType:      valueobject.ProposalType(p.ProposalType),
		EstimatedDuration: p.EstimatedDuration,
		Status:            valueobject.ProposalStatus(p.Status),
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

func toProposalEntities(rows []proposalRow) []*entity.Proposal {
	result := make([]*entity.Proposal, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
