package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/civreg/civreg/internal/domain"
)

// CitizenInput carries the six required civil fields for create and update.
type CitizenInput struct {
	FirstName     string
	LastName      string
	BirthDate     string
	Address       string
	MaritalStatus string
	Citizenship   string
}

// CitizenService enforces record validation and maps CRUD operations to the
// citizen store.
type CitizenService struct {
	citizens domain.CitizenRepository
}

// NewCitizenService creates a new CitizenService.
func NewCitizenService(citizens domain.CitizenRepository) *CitizenService {
	return &CitizenService{citizens: citizens}
}

// validate rejects partially-filled records before they reach the store.
func validate(in CitizenInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"birth_date", in.BirthDate},
		{"address", in.Address},
		{"marital_status", in.MaritalStatus},
		{"citizenship", in.Citizenship},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, f.name)
		}
	}

	if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
		return fmt.Errorf("%w: birth_date must be a YYYY-MM-DD date", domain.ErrInvalidInput)
	}

	if !slices.Contains(domain.MaritalStatuses, in.MaritalStatus) {
		return fmt.Errorf("%w: marital_status must be one of %s",
			domain.ErrInvalidInput, strings.Join(domain.MaritalStatuses, ", "))
	}

	return nil
}

// Create validates the input and inserts a new citizen, returning the record
// with its newly assigned id. Nothing is inserted on validation failure.
func (s *CitizenService) Create(ctx context.Context, in CitizenInput) (*domain.Citizen, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	citizen := &domain.Citizen{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		BirthDate:     in.BirthDate,
		Address:       in.Address,
		MaritalStatus: in.MaritalStatus,
		Citizenship:   in.Citizenship,
	}

	if err := s.citizens.Create(ctx, citizen); err != nil {
		return nil, fmt.Errorf("create citizen: %w", err)
	}

	return citizen, nil
}

// List returns every citizen in the store. Filtering and pagination are a
// client concern; see internal/client.
func (s *CitizenService) List(ctx context.Context) ([]domain.Citizen, error) {
	citizens, err := s.citizens.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	return citizens, nil
}

// Get retrieves a single citizen by id.
func (s *CitizenService) Get(ctx context.Context, id int64) (*domain.Citizen, error) {
	return s.citizens.GetByID(ctx, id)
}

// Update validates the input and replaces all six fields of the record
// matching id. Fails with domain.ErrNotFound when no row matched.
func (s *CitizenService) Update(ctx context.Context, id int64, in CitizenInput) (*domain.Citizen, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	citizen := &domain.Citizen{
		ID:            id,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		BirthDate:     in.BirthDate,
		Address:       in.Address,
		MaritalStatus: in.MaritalStatus,
		Citizenship:   in.Citizenship,
	}

	if err := s.citizens.Update(ctx, citizen); err != nil {
		return nil, err
	}

	return citizen, nil
}

// Delete removes the record matching id. Fails with domain.ErrNotFound when
// no row matched.
func (s *CitizenService) Delete(ctx context.Context, id int64) error {
	return s.citizens.Delete(ctx, id)
}
