package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/JULEEP/securitybackend/internal/pkg/apperror"
)

const (
	MaxNameLength  = 100
	MaxEmailLength = 255
	MaxSkillLength = 100
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(field, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(field+" is too short", field)
	}
	if max > 0 && length > max {
		return apperror.Validation(field+" is too long", field)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperror.Validation("Email is required", "email")
	}
	if len(email) > MaxEmailLength {
		return apperror.Validation("Email is too long", "email")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || len(parts[0]) > 64 {
		return apperror.Validation("Invalid email format", "email")
	}
	if !emailLocalRegex.MatchString(parts[0]) || !emailDomainRegex.MatchString(parts[1]) {
		return apperror.Validation("Invalid email format", "email")
	}
	return nil
}

// RequireFields возвращает ошибку со всеми пустыми полями из fields.
func RequireFields(values map[string]string, fields ...string) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(values[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return apperror.MissingFields(missing)
	}
	return nil
}

// ValidateSkills проверяет список навыков для пакетной вставки.
func ValidateSkills(skills []string) ([]string, error) {
	if len(skills) == 0 {
		return nil, apperror.Validation("Skills must be a non-empty array", "skills")
	}
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, apperror.Validation("Skill name cannot be empty", "skills")
		}
		if err := ValidateLength("skill_name", s, 1, MaxSkillLength); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, s)
	}
	return cleaned, nil
}
