package settings

import (
	"strings"
	"unicode/utf8"

	"github.com/jaapghar/jaapghar-backend/internal/domain"
)

const maxDisplayNameLen = 64

// UpdateInput carries a partial settings change. Nil fields stay untouched.
type UpdateInput struct {
	DailyTarget  *uint64 `json:"dailyTarget"`
	SoundEnabled *bool   `json:"soundEnabled"`
	DisplayName  *string `json:"displayName"`
}

func (in UpdateInput) Validate() error {
	var fields []domain.FieldError
	if in.DailyTarget != nil && *in.DailyTarget == 0 {
		fields = append(fields, domain.FieldError{Field: "dailyTarget", Message: "must be greater than zero"})
	}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			fields = append(fields, domain.FieldError{Field: "displayName", Message: "must not be empty"})
		} else if utf8.RuneCountInString(name) > maxDisplayNameLen {
			fields = append(fields, domain.FieldError{Field: "displayName", Message: "too long"})
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Errors: fields}
	}
	return nil
}

func (in UpdateInput) apply(s domain.Settings) domain.Settings {
	if in.DailyTarget != nil {
		s.DailyTarget = *in.DailyTarget
	}
	if in.SoundEnabled != nil {
		s.SoundEnabled = *in.SoundEnabled
	}
	if in.DisplayName != nil {
		s.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	return s
}
