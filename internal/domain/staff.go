package domain

import (
	"time"

	"github.com/google/uuid"
)

type StaffRole string

const (
	StaffHeadCoach      StaffRole = "entraineur"
	StaffAssistantCoach StaffRole = "entraineur_adjoint"
	StaffFitnessCoach   StaffRole = "preparateur_physique"
	StaffAnalyst        StaffRole = "analyste"
	StaffMedical        StaffRole = "medical"
	StaffDirector       StaffRole = "dirigeant"
)

var StaffRoles = []StaffRole{StaffHeadCoach, StaffAssistantCoach, StaffFitnessCoach, StaffAnalyst, StaffMedical, StaffDirector}

type Staff struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	PhotoURL  string    `json:"photo_url"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
