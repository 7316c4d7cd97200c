package validation

import "github.com/JULEEP/securitybackend/internal/pkg/apperror"

// bcrypt учитывает только первые 72 байта пароля.
const MaxPasswordBytes = 72

// ValidatePassword проверяет, что пароль задан и помещается в bcrypt.
func ValidatePassword(password string) error {
	if password == "" {
		return apperror.Validation("Password is required", "password")
	}
	if len(password) > MaxPasswordBytes {
		return apperror.Validation("Password is too long", "password")
	}
	return nil
}
