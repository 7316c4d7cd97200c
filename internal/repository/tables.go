package repository

import (
	"github.com/JULEEP/securitybackend/internal/db"
	"github.com/JULEEP/securitybackend/internal/repository/common"
)

// Статические схемы сущностей. Mutable - белый список колонок для частичного обновления.

var usersTable = common.Table{
	Name: db.TableUsers,
	Columns: []common.Column{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "password", Required: true},
	},
	Mutable: []string{"name", "email"},
}

var clientsTable = common.Table{
	Name: db.TableClients,
	Columns: []common.Column{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "phone"},
		{Name: "address"},
	},
	Mutable: []string{"name", "email", "phone", "address"},
}

var projectsTable = common.Table{
	Name: db.TableProjects,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "title", Required: true},
		{Name: "assigned_to"},
		{Name: "description"},
		{Name: "project_url"},
		{Name: "github_url"},
		{Name: "technologies", Kind: common.TextArrayColumn},
		{Name: "image_url"},
		{Name: "start_date"},
		{Name: "deadline"},
		{Name: "status"},
		{Name: "visibility"},
	},
	Mutable: []string{
		"title", "assigned_to", "description", "project_url", "github_url",
		"technologies", "image_url", "start_date", "deadline", "status", "visibility",
	},
}

var invoicesTable = common.Table{
	Name: db.TableInvoices,
	Columns: []common.Column{
		{Name: "invoice_number", Aliases: []string{"invoiceNumber"}, Required: true},
		{Name: "client", Required: true},
		{Name: "amount", Required: true},
		{Name: "date_issued", Aliases: []string{"dateIssued"}, Required: true},
		{Name: "status", Required: true},
	},
	Mutable: []string{"invoice_number", "client", "amount", "date_issued", "status"},
}

var basicInfoTable = common.Table{
	Name: db.TableBasicInfo,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "first_name", Aliases: []string{"firstName"}, Required: true},
		{Name: "last_name", Aliases: []string{"lastName"}, Required: true},
		{Name: "email_address", Aliases: []string{"emailAddress"}, Required: true},
		{Name: "phone_number", Aliases: []string{"phoneNumber"}},
		{Name: "current_position", Aliases: []string{"currentPosition"}},
		{Name: "categories", Kind: common.TextArrayColumn},
		{Name: "description"},
		{Name: "date_of_birth", Aliases: []string{"dateOfBirth"}},
		{Name: "age_range", Aliases: []string{"ageRange"}},
		{Name: "gender"},
		{Name: "languages", Kind: common.TextArrayColumn},
		{Name: "qualification"},
		{Name: "years_of_experience", Aliases: []string{"yearsOfExperience"}},
		{Name: "offer_salary", Aliases: []string{"offerSalary"}},
		{Name: "salary_type", Aliases: []string{"salaryType"}},
		{Name: "currency"},
		{Name: "street_address", Aliases: []string{"streetAddress"}},
		{Name: "city"},
		{Name: "state"},
		{Name: "zip_code", Aliases: []string{"zipCode"}},
		{Name: "country"},
	},
	Mutable: []string{
		"first_name", "last_name", "email_address", "phone_number", "current_position",
		"categories", "description", "date_of_birth", "age_range", "gender", "languages",
		"qualification", "years_of_experience", "offer_salary", "salary_type", "currency",
		"street_address", "city", "state", "zip_code", "country",
	},
}

var socialInfoTable = common.Table{
	Name: db.TableSocialInfo,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "resume_file_path", Aliases: []string{"resumeFilePath"}},
		{Name: "twitter_link", Aliases: []string{"twitterLink"}},
		{Name: "linkedin_link", Aliases: []string{"linkedinLink"}},
		{Name: "facebook_link", Aliases: []string{"facebookLink"}},
		{Name: "instagram_link", Aliases: []string{"instagramLink"}},
	},
	Mutable: []string{"resume_file_path", "twitter_link", "linkedin_link", "facebook_link", "instagram_link"},
}

var educationTable = common.Table{
	Name: db.TableEducation,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "title", Required: true},
		{Name: "university_name", Aliases: []string{"universityName"}, Required: true},
		{Name: "level_of_education", Aliases: []string{"levelOfEducation"}, Required: true},
		{Name: "from_date", Aliases: []string{"fromDate"}, Required: true},
		{Name: "to_date", Aliases: []string{"toDate"}, Required: true},
		{Name: "description"},
		{Name: "about"},
	},
	Mutable: []string{"title", "university_name", "level_of_education", "from_date", "to_date", "description", "about"},
}

var experienceTable = common.Table{
	Name: db.TableExperience,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "job_title", Required: true},
		{Name: "company", Required: true},
		{Name: "location"},
		{Name: "degree"},
		{Name: "from_date", Required: true},
		{Name: "to_date"},
		{Name: "description"},
	},
	Mutable: []string{"job_title", "company", "location", "degree", "from_date", "to_date", "description"},
}

var skillsTable = common.Table{
	Name: db.TableSkills,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "skill_name", Aliases: []string{"skillName"}, Required: true},
	},
	Mutable: []string{"skill_name"},
}

var awardsTable = common.Table{
	Name: db.TableAwards,
	Columns: []common.Column{
		{Name: "user_id", Required: true},
		{Name: "title", Required: true},
		{Name: "award_date", Required: true},
		{Name: "description"},
	},
	Mutable: []string{"title", "award_date", "description"},
}
