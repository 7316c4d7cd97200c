package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/repository/common"
	"github.com/JULEEP/securitybackend/internal/validation"
)

// SingleRecordRepository дочерняя запись пользователя, не более одной (basic info, social info).
type SingleRecordRepository[T any] struct {
	store *common.Store[T]
}

func (r *SingleRecordRepository[T]) Create(ctx context.Context, userID int64, values common.Values) (*T, error) {
	return r.store.Insert(ctx, values, common.Values{"user_id": userID})
}

func (r *SingleRecordRepository[T]) Get(ctx context.Context, userID int64) (*T, error) {
	return r.store.GetBy(ctx, "user_id", userID)
}

func (r *SingleRecordRepository[T]) Update(ctx context.Context, userID int64, values common.Values) (*T, error) {
	return r.store.UpdateBy(ctx, "user_id", userID, values)
}

// Upsert обновляет запись пользователя или создаёт её, если записи ещё нет.
func (r *SingleRecordRepository[T]) Upsert(ctx context.Context, userID int64, values common.Values) (*T, error) {
	updated, err := r.Update(ctx, userID, values)
	if err != nil || updated != nil {
		return updated, err
	}
	return r.Create(ctx, userID, values)
}

func (r *SingleRecordRepository[T]) Delete(ctx context.Context, userID int64) (*T, error) {
	return r.store.DeleteBy(ctx, "user_id", userID)
}

// ListRecordRepository список дочерних записей пользователя (education, experience, ...).
type ListRecordRepository[T any] struct {
	store   *common.Store[T]
	orderBy string
}

func (r *ListRecordRepository[T]) Create(ctx context.Context, userID int64, values common.Values) (*T, error) {
	return r.store.Insert(ctx, values, common.Values{"user_id": userID})
}

func (r *ListRecordRepository[T]) List(ctx context.Context, userID int64) ([]T, error) {
	return r.store.ListBy(ctx, "user_id", userID, r.orderBy)
}

// Update меняет запись id, только если она принадлежит userID.
func (r *ListRecordRepository[T]) Update(ctx context.Context, userID, id int64, values common.Values) (*T, error) {
	return r.store.UpdateOwned(ctx, id, userID, values)
}

func (r *ListRecordRepository[T]) Delete(ctx context.Context, userID, id int64) (*T, error) {
	return r.store.DeleteOwned(ctx, id, userID)
}

// AwardInput одна награда в пакетной вставке.
type AwardInput struct {
	Title       string
	AwardDate   string
	Description *string
}

// ProfileRepository объединяет дочерние таблицы анкеты пользователя.
type ProfileRepository struct {
	db *sqlx.DB

	BasicInfo  *SingleRecordRepository[models.BasicInfo]
	SocialInfo *SingleRecordRepository[models.SocialInfo]
	Education  *ListRecordRepository[models.Education]
	Experience *ListRecordRepository[models.Experience]
	Skills     *ListRecordRepository[models.Skill]
	Awards     *ListRecordRepository[models.Award]
}

// NewProfileRepository создаёт репозиторий анкеты.
func NewProfileRepository(db *sqlx.DB, schema common.Provisioner) *ProfileRepository {
	return &ProfileRepository{
		db:         db,
		BasicInfo:  &SingleRecordRepository[models.BasicInfo]{store: common.NewStore[models.BasicInfo](db, schema, basicInfoTable)},
		SocialInfo: &SingleRecordRepository[models.SocialInfo]{store: common.NewStore[models.SocialInfo](db, schema, socialInfoTable)},
		Education:  &ListRecordRepository[models.Education]{store: common.NewStore[models.Education](db, schema, educationTable), orderBy: "from_date DESC, id DESC"},
		Experience: &ListRecordRepository[models.Experience]{store: common.NewStore[models.Experience](db, schema, experienceTable), orderBy: "from_date DESC, id DESC"},
		Skills:     &ListRecordRepository[models.Skill]{store: common.NewStore[models.Skill](db, schema, skillsTable), orderBy: "id ASC"},
		Awards:     &ListRecordRepository[models.Award]{store: common.NewStore[models.Award](db, schema, awardsTable), orderBy: "award_date DESC, id DESC"},
	}
}

// AddSkills вставляет навыки одним запросом.
func (r *ProfileRepository) AddSkills(ctx context.Context, userID int64, skills []string) ([]models.Skill, error) {
	skills, err := validation.ValidateSkills(skills)
	if err != nil {
		return nil, err
	}
	if err := r.Skills.store.Ensure(ctx); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO skills (user_id, skill_name)
		SELECT $1::int, unnest($2::text[])
		RETURNING *
	`
	inserted := make([]models.Skill, 0, len(skills))
	if err := r.db.SelectContext(ctx, &inserted, query, userID, pq.Array(skills)); err != nil {
		return nil, fmt.Errorf("profile repository: add skills %w", err)
	}
	return inserted, nil
}

// AddAwards вставляет награды в одной транзакции: либо все, либо ни одной.
func (r *ProfileRepository) AddAwards(ctx context.Context, userID int64, awards []AwardInput) ([]models.Award, error) {
	if len(awards) == 0 {
		return nil, apperror.Validation("Awards must be a non-empty array", "awards")
	}
	for i, a := range awards {
		if a.Title == "" || a.AwardDate == "" {
			return nil, apperror.Validation(fmt.Sprintf("Award #%d requires title and award_date", i+1), "title", "award_date")
		}
	}
	if err := r.Awards.store.Ensure(ctx); err != nil {
		return nil, err
	}

	var inserted []models.Award
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		bi := common.NewBatchInserter[models.Award](tx, "INSERT INTO awards (user_id, title, award_date, description)", 4, 100).
			Returning("*")
		for _, a := range awards {
			if err := bi.Add(ctx, userID, a.Title, a.AwardDate, a.Description); err != nil {
				return err
			}
		}
		if err := bi.Flush(ctx); err != nil {
			return err
		}
		inserted = bi.Rows()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("profile repository: add awards %w", err)
	}
	return inserted, nil
}
