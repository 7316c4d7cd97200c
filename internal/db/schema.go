package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/singleflight"
)

// Имена таблиц, которыми оперирует провижинер.
const (
	TableUsers      = "users"
	TableClients    = "clients"
	TableProjects   = "projects"
	TableProposals  = "proposals"
	TableInvoices   = "invoices"
	TableBasicInfo  = "user_basic_info"
	TableSocialInfo = "user_social_info"
	TableEducation  = "education_details"
	TableExperience = "experience"
	TableSkills     = "skills"
	TableAwards     = "awards"
)

// ddlTimeout ограничивает один CREATE TABLE.
const ddlTimeout = 30 * time.Second

type tableDef struct {
	deps []string
	ddl  string
}

// tableOrder порядок создания при прогреве: зависимости раньше зависимых.
var tableOrder = []string{
	TableUsers,
	TableClients,
	TableProjects,
	TableProposals,
	TableInvoices,
	TableBasicInfo,
	TableSocialInfo,
	TableEducation,
	TableExperience,
	TableSkills,
	TableAwards,
}

var tableDefs = map[string]tableDef{
	TableUsers: {ddl: `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableClients: {ddl: `
		CREATE TABLE IF NOT EXISTS clients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			address TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableProjects: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS projects (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			assigned_to INTEGER REFERENCES users(id) ON DELETE SET NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			project_url VARCHAR(500),
			github_url VARCHAR(500),
			technologies TEXT[] NOT NULL DEFAULT '{}',
			image_url VARCHAR(500),
			start_date DATE,
			deadline DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'processing', 'completed')),
			visibility VARCHAR(20) NOT NULL DEFAULT 'public',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableProposals: {deps: []string{TableUsers, TableProjects}, ddl: `
		CREATE TABLE IF NOT EXISTS proposals (
			id SERIAL PRIMARY KEY,
			freelancer_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			client_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			proposal_type VARCHAR(10) NOT NULL CHECK (proposal_type IN ('fixed', 'hourly')),
			estimated_duration VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'viewed', 'shortlisted', 'accepted', 'rejected', 'withdrawn')),
			cover_letter TEXT,
			attachments TEXT[] NOT NULL DEFAULT '{}',
			applied_date TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_activity_date TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			activity_log JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableInvoices: {ddl: `
		CREATE TABLE IF NOT EXISTS invoices (
			id SERIAL PRIMARY KEY,
			invoice_number VARCHAR(50) UNIQUE NOT NULL,
			client VARCHAR(255) NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			date_issued DATE NOT NULL,
			status VARCHAR(20) NOT NULL CHECK (status IN ('Paid', 'Pending', 'Unpaid')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableBasicInfo: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS user_basic_info (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email_address VARCHAR(255) UNIQUE NOT NULL,
			phone_number VARCHAR(30),
			current_position VARCHAR(255),
			categories TEXT[] NOT NULL DEFAULT '{}',
			description TEXT,
			date_of_birth DATE,
			age_range VARCHAR(50),
			gender VARCHAR(20),
			languages TEXT[] NOT NULL DEFAULT '{}',
			qualification VARCHAR(255),
			years_of_experience VARCHAR(50),
			offer_salary NUMERIC(10,2),
			salary_type VARCHAR(50),
			currency VARCHAR(10),
			street_address VARCHAR(255),
			city VARCHAR(100),
			state VARCHAR(100),
			zip_code VARCHAR(20),
			country VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableSocialInfo: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS user_social_info (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			resume_file_path VARCHAR(500),
			twitter_link VARCHAR(255),
			linkedin_link VARCHAR(255),
			facebook_link VARCHAR(255),
			instagram_link VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableEducation: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS education_details (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			university_name VARCHAR(255) NOT NULL,
			level_of_education VARCHAR(100) NOT NULL,
			from_date DATE NOT NULL,
			to_date DATE NOT NULL,
			description TEXT,
			about TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableExperience: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS experience (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			job_title VARCHAR(255) NOT NULL,
			company VARCHAR(255) NOT NULL,
			location VARCHAR(255),
			degree VARCHAR(255),
			from_date DATE NOT NULL,
			to_date DATE,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableSkills: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS skills (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			skill_name VARCHAR(100) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
	TableAwards: {deps: []string{TableUsers}, ddl: `
		CREATE TABLE IF NOT EXISTS awards (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			award_date DATE NOT NULL,
			description TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`},
}

// Provisioner лениво создаёт таблицы перед первым обращением.
// Успешно созданная таблица запоминается; ошибка не кэшируется и повторится при следующем вызове.
type Provisioner struct {
	db    *sqlx.DB
	group singleflight.Group
	ready sync.Map
}

// NewProvisioner создаёт провижинер поверх явного соединения.
func NewProvisioner(db *sqlx.DB) *Provisioner {
	return &Provisioner{db: db}
}

// Tables возвращает все известные таблицы в порядке создания.
func Tables() []string {
	out := make([]string, len(tableOrder))
	copy(out, tableOrder)
	return out
}

// EnsureTable создаёт таблицу и её зависимости, если их ещё нет.
// Параллельные вызовы для одной таблицы схлопываются в один CREATE.
func (p *Provisioner) EnsureTable(ctx context.Context, table string) error {
	if _, ok := p.ready.Load(table); ok {
		return nil
	}

	def, ok := tableDefs[table]
	if !ok {
		return fmt.Errorf("schema: неизвестная таблица %s", table)
	}

	for _, dep := range def.deps {
		if err := p.EnsureTable(ctx, dep); err != nil {
			return err
		}
	}

	_, err, _ := p.group.Do(table, func() (any, error) {
		if _, ok := p.ready.Load(table); ok {
			return nil, nil
		}
		// DDL общий для всех ожидающих, поэтому отмена запроса первого из них его не прерывает.
		ddlCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ddlTimeout)
		defer cancel()
		if _, err := p.db.ExecContext(ddlCtx, def.ddl); err != nil {
			return nil, err
		}
		p.ready.Store(table, struct{}{})
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("schema: не удалось создать таблицу %s: %w", table, err)
	}
	return nil
}

// EnsureAll создаёт все таблицы по порядку.
func (p *Provisioner) EnsureAll(ctx context.Context) error {
	for _, table := range tableOrder {
		if err := p.EnsureTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}
