package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/civreg/civreg/internal/domain"
)

// CitizenRepository implements domain.CitizenRepository using SQLite.
type CitizenRepository struct {
	db *sql.DB
}

// NewCitizenRepository creates a new SQLite-backed CitizenRepository.
func NewCitizenRepository(db *DB) *CitizenRepository {
	return &CitizenRepository{db: db.SqlDB}
}

func (r *CitizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO citizens (first_name, last_name, birth_date, address, marital_status, citizenship, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		citizen.FirstName, citizen.LastName, citizen.BirthDate,
		citizen.Address, citizen.MaritalStatus, citizen.Citizenship, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert citizen: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	citizen.ID = id
	citizen.CreatedAt = now
	citizen.UpdatedAt = now
	return nil
}

func (r *CitizenRepository) GetByID(ctx context.Context, id int64) (*domain.Citizen, error) {
	citizen := &domain.Citizen{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, birth_date, address, marital_status, citizenship, created_at, updated_at
		 FROM citizens WHERE id = ?`, id,
	).Scan(
		&citizen.ID, &citizen.FirstName, &citizen.LastName, &citizen.BirthDate,
		&citizen.Address, &citizen.MaritalStatus, &citizen.Citizenship,
		&citizen.CreatedAt, &citizen.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query citizen by id: %w", err)
	}
	return citizen, nil
}

func (r *CitizenRepository) List(ctx context.Context) ([]domain.Citizen, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, birth_date, address, marital_status, citizenship, created_at, updated_at
		 FROM citizens ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query citizens: %w", err)
	}
	defer rows.Close()

	var citizens []domain.Citizen
	for rows.Next() {
		var c domain.Citizen
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.BirthDate,
			&c.Address, &c.MaritalStatus, &c.Citizenship,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan citizen: %w", err)
		}
		citizens = append(citizens, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate citizens: %w", err)
	}
	return citizens, nil
}

// Update replaces all six civil fields of the row matching citizen.ID.
func (r *CitizenRepository) Update(ctx context.Context, citizen *domain.Citizen) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE citizens
		 SET first_name = ?, last_name = ?, birth_date = ?, address = ?, marital_status = ?, citizenship = ?, updated_at = ?
		 WHERE id = ?`,
		citizen.FirstName, citizen.LastName, citizen.BirthDate,
		citizen.Address, citizen.MaritalStatus, citizen.Citizenship, now, citizen.ID,
	)
	if err != nil {
		return fmt.Errorf("update citizen: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	citizen.UpdatedAt = now
	return nil
}

func (r *CitizenRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM citizens WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete citizen: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
