package handler

import (
	"time"

	"github.com/civreg/civreg/internal/domain"
)

// CitizenDTO is the JSON representation of a citizen record.
type CitizenDTO struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthDate     string `json:"birth_date"`
	Address       string `json:"address"`
	MaritalStatus string `json:"marital_status"`
	Citizenship   string `json:"citizenship"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toCitizenDTO(c *domain.Citizen) CitizenDTO {
	return CitizenDTO{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		BirthDate:     c.BirthDate,
		Address:       c.Address,
		MaritalStatus: c.MaritalStatus,
		Citizenship:   c.Citizenship,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCitizenDTOs(citizens []domain.Citizen) []CitizenDTO {
	dtos := make([]CitizenDTO, len(citizens))
	for i := range citizens {
		dtos[i] = toCitizenDTO(&citizens[i])
	}
	return dtos
}
