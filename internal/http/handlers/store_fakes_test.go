package handlers

import (
	"context"
	"sort"

	"github.com/JULEEP/securitybackend/internal/models"
	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
	"github.com/JULEEP/securitybackend/internal/repository"
	repocommon "github.com/JULEEP/securitybackend/internal/repository/common"
)

// fakeStore CRUD в памяти; build превращает ввод в строку, patch применяет update.
type fakeStore[T any] struct {
	items  map[int64]*T
	nextID int64
	err    error
	build  func(id int64, values repocommon.Values) (*T, error)
	patch  func(item *T, values repocommon.Values)
}

func newFakeStore[T any](build func(int64, repocommon.Values) (*T, error), patch func(*T, repocommon.Values)) *fakeStore[T] {
	return &fakeStore[T]{items: map[int64]*T{}, nextID: 1, build: build, patch: patch}
}

func (s *fakeStore[T]) Create(_ context.Context, values repocommon.Values) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, err := s.build(s.nextID, values)
	if err != nil {
		return nil, err
	}
	s.items[s.nextID] = item
	s.nextID++
	return item, nil
}

func (s *fakeStore[T]) GetByID(_ context.Context, id int64) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items[id], nil
}

func (s *fakeStore[T]) List(_ context.Context) ([]T, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.items[id])
	}
	return out, nil
}

func (s *fakeStore[T]) Update(_ context.Context, id int64, values repocommon.Values) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	if s.patch != nil {
		s.patch(item, values)
	}
	return item, nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id int64) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	delete(s.items, id)
	return item, nil
}

func str(values repocommon.Values, key string) string {
	s, _ := values[key].(string)
	return s
}

func requireKeys(values repocommon.Values, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if str(values, k) == "" {
			if _, ok := values[k].(float64); !ok {
				missing = append(missing, k)
			}
		}
	}
	if len(missing) > 0 {
		return apperror.MissingFields(missing)
	}
	return nil
}

func newClientStore() *fakeStore[models.Client] {
	return newFakeStore(func(id int64, v repocommon.Values) (*models.Client, error) {
		if err := requireKeys(v, "name", "email"); err != nil {
			return nil, err
		}
		return &models.Client{ID: id, Name: str(v, "name"), Email: str(v, "email")}, nil
	}, func(c *models.Client, v repocommon.Values) {
		if name := str(v, "name"); name != "" {
			c.Name = name
		}
	})
}

func newInvoiceStore() *fakeStore[models.Invoice] {
	return newFakeStore(func(id int64, v repocommon.Values) (*models.Invoice, error) {
		if err := requireKeys(v, "invoice_number", "client", "amount", "date_issued", "status"); err != nil {
			return nil, err
		}
		amount, _ := v["amount"].(float64)
		return &models.Invoice{ID: id, InvoiceNumber: str(v, "invoice_number"), Client: str(v, "client"), Amount: amount, Status: str(v, "status")}, nil
	}, func(inv *models.Invoice, v repocommon.Values) {
		if status := str(v, "status"); status != "" {
			inv.Status = status
		}
	})
}

// fakeProjects ProjectStore поверх fakeStore.
type fakeProjects struct {
	*fakeStore[models.Project]
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{newFakeStore(func(id int64, v repocommon.Values) (*models.Project, error) {
		if err := requireKeys(v, "title"); err != nil {
			return nil, err
		}
		owner, _ := v["user_id"].(int64)
		return &models.Project{ID: id, UserID: owner, Title: str(v, "title"), Status: "pending", Visibility: "public"}, nil
	}, func(p *models.Project, v repocommon.Values) {
		if status := str(v, "status"); status != "" {
			p.Status = status
		}
	})}
}

func (p *fakeProjects) Create(ctx context.Context, ownerID int64, values repocommon.Values) (*models.Project, error) {
	withOwner := repocommon.Values{"user_id": ownerID}
	for k, v := range values {
		if k != "user_id" {
			withOwner[k] = v
		}
	}
	return p.fakeStore.Create(ctx, withOwner)
}

func (p *fakeProjects) ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	all, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(all))
	for _, pr := range all {
		if pr.UserID == ownerID {
			out = append(out, pr)
		}
	}
	return out, nil
}

// fakeUsers UserDirectory поверх fakeStore.
type fakeUsers struct {
	*fakeStore[models.User]
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{newFakeStore(func(id int64, v repocommon.Values) (*models.User, error) {
		return &models.User{ID: id, Name: str(v, "name"), Email: str(v, "email"), PasswordHash: "hash"}, nil
	}, func(u *models.User, v repocommon.Values) {
		if name := str(v, "name"); name != "" {
			u.Name = name
		}
	})}
}

// fakeSingle одна запись на пользователя.
type fakeSingle[T any] struct {
	byUser map[int64]*T
	build  func(userID int64, values repocommon.Values) (*T, error)
}

func (s *fakeSingle[T]) Create(_ context.Context, userID int64, values repocommon.Values) (*T, error) {
	if _, ok := s.byUser[userID]; ok {
		return nil, apperror.New(apperror.ErrCodeConflict, "Record already exists")
	}
	item, err := s.build(userID, values)
	if err != nil {
		return nil, err
	}
	s.byUser[userID] = item
	return item, nil
}

func (s *fakeSingle[T]) Get(_ context.Context, userID int64) (*T, error) {
	return s.byUser[userID], nil
}

func (s *fakeSingle[T]) Update(_ context.Context, userID int64, values repocommon.Values) (*T, error) {
	item, ok := s.byUser[userID]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (s *fakeSingle[T]) Upsert(ctx context.Context, userID int64, values repocommon.Values) (*T, error) {
	if item, ok := s.byUser[userID]; ok {
		return item, nil
	}
	return s.Create(ctx, userID, values)
}

func (s *fakeSingle[T]) Delete(_ context.Context, userID int64) (*T, error) {
	item, ok := s.byUser[userID]
	if !ok {
		return nil, nil
	}
	delete(s.byUser, userID)
	return item, nil
}

// fakeList список записей пользователя.
type fakeList[T any] struct {
	rows   map[int64]map[int64]*T
	nextID int64
	build  func(id, userID int64, values repocommon.Values) (*T, error)
}

func newFakeList[T any](build func(id, userID int64, values repocommon.Values) (*T, error)) *fakeList[T] {
	return &fakeList[T]{rows: map[int64]map[int64]*T{}, nextID: 1, build: build}
}

func (s *fakeList[T]) Create(_ context.Context, userID int64, values repocommon.Values) (*T, error) {
	item, err := s.build(s.nextID, userID, values)
	if err != nil {
		return nil, err
	}
	if s.rows[userID] == nil {
		s.rows[userID] = map[int64]*T{}
	}
	s.rows[userID][s.nextID] = item
	s.nextID++
	return item, nil
}

func (s *fakeList[T]) List(_ context.Context, userID int64) ([]T, error) {
	ids := make([]int64, 0, len(s.rows[userID]))
	for id := range s.rows[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []T
	for _, id := range ids {
		out = append(out, *s.rows[userID][id])
	}
	return out, nil
}

func (s *fakeList[T]) Update(_ context.Context, userID, id int64, _ repocommon.Values) (*T, error) {
	return s.rows[userID][id], nil
}

func (s *fakeList[T]) Delete(_ context.Context, userID, id int64) (*T, error) {
	item, ok := s.rows[userID][id]
	if !ok {
		return nil, nil
	}
	delete(s.rows[userID], id)
	return item, nil
}

// fakeBulk пишет пакеты в те же списки навыков и наград.
type fakeBulk struct {
	skills *fakeList[models.Skill]
	awards *fakeList[models.Award]
	err    error
}

func (b *fakeBulk) AddSkills(ctx context.Context, userID int64, skills []string) ([]models.Skill, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(skills) == 0 {
		return nil, apperror.Validation("Skills must be a non-empty array", "skills")
	}
	out := make([]models.Skill, 0, len(skills))
	for _, name := range skills {
		s, err := b.skills.Create(ctx, userID, repocommon.Values{"skill_name": name})
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (b *fakeBulk) AddAwards(ctx context.Context, userID int64, awards []repository.AwardInput) ([]models.Award, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(awards) == 0 {
		return nil, apperror.Validation("Awards must be a non-empty array", "awards")
	}
	out := make([]models.Award, 0, len(awards))
	for _, a := range awards {
		aw, err := b.awards.Create(ctx, userID, repocommon.Values{"title": a.Title})
		if err != nil {
			return nil, err
		}
		out = append(out, *aw)
	}
	return out, nil
}

func newFakeProfile() (ProfileStores, *fakeBulk) {
	skills := newFakeList(func(id, userID int64, v repocommon.Values) (*models.Skill, error) {
		if err := requireKeys(v, "skill_name"); err != nil {
			return nil, err
		}
		return &models.Skill{ID: id, UserID: userID, SkillName: str(v, "skill_name")}, nil
	})
	awards := newFakeList(func(id, userID int64, v repocommon.Values) (*models.Award, error) {
		return &models.Award{ID: id, UserID: userID, Title: str(v, "title")}, nil
	})
	bulk := &fakeBulk{skills: skills, awards: awards}

	return ProfileStores{
		BasicInfo: &fakeSingle[models.BasicInfo]{byUser: map[int64]*models.BasicInfo{}, build: func(userID int64, v repocommon.Values) (*models.BasicInfo, error) {
			if err := requireKeys(v, "first_name", "last_name", "email_address"); err != nil {
				return nil, err
			}
			return &models.BasicInfo{UserID: userID, FirstName: str(v, "first_name"), LastName: str(v, "last_name"), EmailAddress: str(v, "email_address")}, nil
		}},
		SocialInfo: &fakeSingle[models.SocialInfo]{byUser: map[int64]*models.SocialInfo{}, build: func(userID int64, v repocommon.Values) (*models.SocialInfo, error) {
			return &models.SocialInfo{UserID: userID}, nil
		}},
		Education: newFakeList(func(id, userID int64, v repocommon.Values) (*models.Education, error) {
			return &models.Education{ID: id, UserID: userID, Title: str(v, "title")}, nil
		}),
		Experience: newFakeList(func(id, userID int64, v repocommon.Values) (*models.Experience, error) {
			if err := requireKeys(v, "job_title", "company", "from_date"); err != nil {
				return nil, err
			}
			return &models.Experience{ID: id, UserID: userID, JobTitle: str(v, "job_title"), Company: str(v, "company")}, nil
		}),
		Skills: skills,
		Awards: awards,
		Bulk:   bulk,
	}, bulk
}
