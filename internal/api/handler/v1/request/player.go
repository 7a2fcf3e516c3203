package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/asclub/club-api/internal/domain"
)

type PlayerRequest struct {
	Name         string `json:"name"`
	JerseyNumber int    `json:"jersey_number"`
	Position     string `json:"position"`
	Age          *int   `json:"age"`
	HeightCM     *int   `json:"height_cm"`
	WeightKG     *int   `json:"weight_kg"`
	PhotoURL     string `json:"photo_url"`
	Active       *bool  `json:"active"`
}

func (req *PlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.JerseyNumber, validation.Required, validation.Min(1), validation.Max(99)),
		validation.Field(&req.Position, validation.Required, validation.In(positions...)),
		validation.Field(&req.Age, validation.Min(5), validation.Max(60)),
		validation.Field(&req.HeightCM, validation.Min(100), validation.Max(230)),
		validation.Field(&req.WeightKG, validation.Min(30), validation.Max(150)),
		validation.Field(&req.PhotoURL, is.URL),
	)
}

func (req *PlayerRequest) ToDomain() domain.Player {
	return domain.Player{
		Name:         req.Name,
		JerseyNumber: req.JerseyNumber,
		Position:     domain.Position(req.Position),
		Age:          req.Age,
		HeightCM:     req.HeightCM,
		WeightKG:     req.WeightKG,
		PhotoURL:     req.PhotoURL,
		Active:       boolOr(req.Active, true),
	}
}

type StaffRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PhotoURL string `json:"photo_url"`
	Active   *bool  `json:"active"`
}

func (req *StaffRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Role, validation.Required, validation.In(staffRoles...)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Phone, validation.Length(0, 30)),
		validation.Field(&req.PhotoURL, is.URL),
	)
}

func (req *StaffRequest) ToDomain() domain.Staff {
	return domain.Staff{
		Name:     req.Name,
		Role:     domain.StaffRole(req.Role),
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Active:   boolOr(req.Active, true),
	}
}
