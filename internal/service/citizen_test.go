package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/civreg/civreg/internal/domain"
	"github.com/civreg/civreg/internal/repository/sqlite"
	"github.com/civreg/civreg/internal/service"
)

func newTestCitizenService(t *testing.T) (*service.CitizenService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewCitizenService(db.Citizens()), db
}

func validInput() service.CitizenInput {
	return service.CitizenInput{
		FirstName:     "Jo",
		LastName:      "Doe",
		BirthDate:     "1990-01-15",
		Address:       "1 Main St",
		MaritalStatus: domain.MaritalSingle,
		Citizenship:   "Utopian",
	}
}

func TestCitizenService_Create_Success(t *testing.T) {
	citizens, _ := newTestCitizenService(t)

	c, err := citizens.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
}

func TestCitizenService_Create_MissingField(t *testing.T) {
	citizens, db := newTestCitizenService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.CitizenInput)
	}{
		{"empty first_name", func(in *service.CitizenInput) { in.FirstName = "" }},
		{"empty last_name", func(in *service.CitizenInput) { in.LastName = "" }},
		{"empty birth_date", func(in *service.CitizenInput) { in.BirthDate = "" }},
		{"empty address", func(in *service.CitizenInput) { in.Address = "" }},
		{"empty marital_status", func(in *service.CitizenInput) { in.MaritalStatus = "" }},
		{"empty citizenship", func(in *service.CitizenInput) { in.Citizenship = "" }},
		{"whitespace address", func(in *service.CitizenInput) { in.Address = "   " }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := citizens.Create(ctx, in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	// No insert happened on any validation failure.
	var count int
	if err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM citizens").Scan(&count); err != nil {
		t.Fatalf("count citizens: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty store after rejected creates, got %d rows", count)
	}
}

func TestCitizenService_Create_InvalidBirthDate(t *testing.T) {
	citizens, _ := newTestCitizenService(t)

	in := validInput()
	in.BirthDate = "15/01/1990"
	_, err := citizens.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed date, got %v", err)
	}
}

func TestCitizenService_Create_InvalidMaritalStatus(t *testing.T) {
	citizens, _ := newTestCitizenService(t)

	in := validInput()
	in.MaritalStatus = "complicated"
	_, err := citizens.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown marital status, got %v", err)
	}
}

func TestCitizenService_RoundTrip(t *testing.T) {
	citizens, _ := newTestCitizenService(t)
	ctx := context.Background()

	created, err := citizens.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := citizens.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 citizen, got %d", len(list))
	}
	if list[0].ID != created.ID || list[0].FirstName != "Jo" {
		t.Fatalf("listed record does not match created one: %+v", list[0])
	}

	update := validInput()
	update.Address = "42 New Ave"
	update.MaritalStatus = domain.MaritalMarried
	if _, err := citizens.Update(ctx, created.ID, update); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := citizens.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Address != "42 New Ave" || got.MaritalStatus != domain.MaritalMarried {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := citizens.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := citizens.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCitizenService_Update_NotFound(t *testing.T) {
	citizens, db := newTestCitizenService(t)
	ctx := context.Background()

	if _, err := citizens.Create(ctx, validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := citizens.Update(ctx, 9999, validInput())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The store is unchanged.
	var count int
	if err := db.SqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM citizens").Scan(&count); err != nil {
		t.Fatalf("count citizens: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestCitizenService_Update_InvalidInput(t *testing.T) {
	citizens, _ := newTestCitizenService(t)
	ctx := context.Background()

	created, err := citizens.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput()
	in.LastName = ""
	if _, err := citizens.Update(ctx, created.ID, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// The original record is untouched.
	got, err := citizens.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LastName != "Doe" {
		t.Fatalf("expected record unchanged, got last name %q", got.LastName)
	}
}

func TestCitizenService_Delete_NotFound(t *testing.T) {
	citizens, _ := newTestCitizenService(t)

	err := citizens.Delete(context.Background(), 9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
