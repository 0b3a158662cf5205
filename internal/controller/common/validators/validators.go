package validators

import (
	"strings"

	"github.com/Egor213/RBACPanel/internal/domain"
	"github.com/go-playground/validator/v10"
)

// LogQuery is the query accepted by every log endpoint, whatever the transport.
type LogQuery struct {
	Category   string `query:"category" json:"category" validate:"omitempty,category"`
	LogFile    string `query:"file" json:"file" validate:"omitempty,excludes=..,max=255"`
	Level      string `query:"level" json:"level" validate:"omitempty,loglevel"`
	Username   string `query:"username" json:"username" validate:"omitempty,max=150"`
	SearchTerm string `query:"search" json:"search" validate:"omitempty,max=200"`
	Hours      int    `query:"hours" json:"hours" validate:"omitempty,min=1,max=720"`
	Limit      int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=5000"`
}

func (q LogQuery) Filter() domain.LogFilter {
	level := q.Level
	if level != "" {
		level = domain.NormalizeLevel(level)
	}
	return domain.LogFilter{
		Category:       q.Category,
		LogFile:        q.LogFile,
		Level:          level,
		Username:       q.Username,
		SearchTerm:     q.SearchTerm,
		TimeRangeHours: q.Hours,
		MaxEntries:     q.Limit,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=150"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" validate:"omitempty,max=200"`
	TenantName string `json:"tenant_name" validate:"required,max=100"`
}

func (r RegisterRequest) Domain() domain.RegisterRequest {
	return domain.RegisterRequest{
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		FullName:   r.FullName,
		TenantName: r.TenantName,
	}
}

type PermissionQuery struct {
	Permission string `query:"permission" validate:"required,max=100"`
}

type AlertHistoryQuery struct {
	Type  string `query:"type" validate:"omitempty,oneof=errors performance security"`
	Level string `query:"level" validate:"omitempty,oneof=low medium high"`
	Hours int    `query:"hours" validate:"omitempty,min=1,max=8760"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

// Validator plugs go-playground validation into echo and the gRPC handlers.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseCategory(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return domain.NormalizeLevel(fl.Field().String()) != domain.LevelUnknown ||
			strings.EqualFold(fl.Field().String(), domain.LevelUnknown)
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}
