package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Project описывает проект пользователя.
type Project struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	AssignedTo   *int64          `db:"assigned_to" json:"assigned_to"`
	Title        string          `db:"title" json:"title"`
	Description  *string         `db:"description" json:"description"`
	ProjectURL   *string         `db:"project_url" json:"project_url"`
	GithubURL    *string         `db:"github_url" json:"github_url"`
	Technologies pq.StringArray  `db:"technologies" json:"technologies"`
	ImageURL     *string         `db:"image_url" json:"image_url"`
	StartDate    *datatypes.Date `db:"start_date" json:"start_date"`
	Deadline     *datatypes.Date `db:"deadline" json:"deadline"`
	Status       string          `db:"status" json:"status"`
	Visibility   string          `db:"visibility" json:"visibility"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Invoice описывает выставленный счёт.
type Invoice struct {
	ID            int64          `db:"id" json:"id"`
	InvoiceNumber string         `db:"invoice_number" json:"invoice_number"`
	Client        string         `db:"client" json:"client"`
	Amount        float64        `db:"amount" json:"amount"`
	DateIssued    datatypes.Date `db:"date_issued" json:"date_issued"`
	Status        string         `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
