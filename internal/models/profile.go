package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// BasicInfo основная анкета пользователя, не более одной на пользователя.
type BasicInfo struct {
	ID                int64           `db:"id" json:"id"`
	UserID            int64           `db:"user_id" json:"user_id"`
	FirstName         string          `db:"first_name" json:"first_name"`
	LastName          string          `db:"last_name" json:"last_name"`
	EmailAddress      string          `db:"email_address" json:"email_address"`
	PhoneNumber       *string         `db:"phone_number" json:"phone_number"`
	CurrentPosition   *string         `db:"current_position" json:"current_position"`
	Categories        pq.StringArray  `db:"categories" json:"categories"`
	Description       *string         `db:"description" json:"description"`
	DateOfBirth       *datatypes.Date `db:"date_of_birth" json:"date_of_birth"`
	AgeRange          *string         `db:"age_range" json:"age_range"`
	Gender            *string         `db:"gender" json:"gender"`
	Languages         pq.StringArray  `db:"languages" json:"languages"`
	Qualification     *string         `db:"qualification" json:"qualification"`
	YearsOfExperience *string         `db:"years_of_experience" json:"years_of_experience"`
	OfferSalary       *float64        `db:"offer_salary" json:"offer_salary"`
	SalaryType        *string         `db:"salary_type" json:"salary_type"`
	Currency          *string         `db:"currency" json:"currency"`
	StreetAddress     *string         `db:"street_address" json:"street_address"`
	City              *string         `db:"city" json:"city"`
	State             *string         `db:"state" json:"state"`
	ZipCode           *string         `db:"zip_code" json:"zip_code"`
	Country           *string         `db:"country" json:"country"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// SocialInfo ссылки на соцсети и резюме.
type SocialInfo struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	ResumeFilePath *string   `db:"resume_file_path" json:"resume_file_path"`
	TwitterLink    *string   `db:"twitter_link" json:"twitter_link"`
	LinkedinLink   *string   `db:"linkedin_link" json:"linkedin_link"`
	FacebookLink   *string   `db:"facebook_link" json:"facebook_link"`
	InstagramLink  *string   `db:"instagram_link" json:"instagram_link"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type Education struct {
	ID               int64          `db:"id" json:"id"`
	UserID           int64          `db:"user_id" json:"user_id"`
	Title            string         `db:"title" json:"title"`
	UniversityName   string         `db:"university_name" json:"university_name"`
	LevelOfEducation string         `db:"level_of_education" json:"level_of_education"`
	FromDate         datatypes.Date `db:"from_date" json:"from_date"`
	ToDate           datatypes.Date `db:"to_date" json:"to_date"`
	Description      *string        `db:"description" json:"description"`
	About            *string        `db:"about" json:"about"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

type Experience struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	JobTitle    string          `db:"job_title" json:"job_title"`
	Company     string          `db:"company" json:"company"`
	Location    *string         `db:"location" json:"location"`
	Degree      *string         `db:"degree" json:"degree"`
	FromDate    datatypes.Date  `db:"from_date" json:"from_date"`
	ToDate      *datatypes.Date `db:"to_date" json:"to_date"`
	Description *string         `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type Skill struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	SkillName string    `db:"skill_name" json:"skill_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Award struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	AwardDate   datatypes.Date `db:"award_date" json:"award_date"`
	Description *string        `db:"description" json:"description"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Profile собирает анкету пользователя целиком.
type Profile struct {
	User       *User        `json:"user"`
	BasicInfo  *BasicInfo   `json:"basic_info"`
	SocialInfo *SocialInfo  `json:"social_info"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	Skills     []Skill      `json:"skills"`
	Awards     []Award      `json:"awards"`
}
