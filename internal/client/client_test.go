package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/civreg/civreg/internal/client"
	"github.com/civreg/civreg/internal/handler"
	"github.com/civreg/civreg/internal/repository/sqlite"
	"github.com/civreg/civreg/internal/service"
)

// newTestStack spins up the real server stack and a session pointed at it.
func newTestStack(t *testing.T) *client.Session {
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

	tokens := service.NewTokenService("test-secret-for-client-tests", time.Hour)
	auth := service.NewAuthService(db.Users(), tokens, 4)
	citizens := service.NewCitizenService(db.Citizens())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, citizens, tokens)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
	return client.NewSession(srv.URL, store)
}

func testRecord() client.Citizen {
	return client.Citizen{
		FirstName:     "Jo",
		LastName:      "Doe",
		BirthDate:     "1990-01-15",
		Address:       "1 Main St",
		MaritalStatus: "single",
		Citizenship:   "Utopian",
	}
}

func TestSession_LoginStoresToken(t *testing.T) {
	session := newTestStack(t)
	ctx := context.Background()

	if _, ok := session.Token(); ok {
		t.Fatal("expected no token before login")
	}

	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, ok := session.Token(); !ok {
		t.Fatal("expected token after login")
	}
}

func TestSession_LoginFailureStoresNothing(t *testing.T) {
	session := newTestStack(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := session.Login(ctx, "alice", "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
	if _, ok := session.Token(); ok {
		t.Fatal("expected no token after failed login")
	}

	if err := session.Login(ctx, "nobody", "pw1"); err == nil {
		t.Fatal("expected error for unknown username")
	}
	if _, ok := session.Token(); ok {
		t.Fatal("expected no token after failed login")
	}
}

func TestSession_RequestsRejectedWhenLoggedOut(t *testing.T) {
	session := newTestStack(t)

	_, err := session.ListCitizens(context.Background())
	if !errors.Is(err, client.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSession_Logout(t *testing.T) {
	session := newTestStack(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := session.Token(); ok {
		t.Fatal("expected no token after logout")
	}

	if _, err := session.ListCitizens(ctx); !errors.Is(err, client.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn after logout, got %v", err)
	}
}

func TestSession_CitizenCRUD(t *testing.T) {
	session := newTestStack(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	id, err := session.CreateCitizen(ctx, testRecord())
	if err != nil {
		t.Fatalf("CreateCitizen: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	list, err := session.ListCitizens(ctx)
	if err != nil {
		t.Fatalf("ListCitizens: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("expected list with id %d, got %+v", id, list)
	}

	updated := testRecord()
	updated.Address = "42 New Ave"
	updated.MaritalStatus = "married"
	if err := session.UpdateCitizen(ctx, id, updated); err != nil {
		t.Fatalf("UpdateCitizen: %v", err)
	}

	list, err = session.ListCitizens(ctx)
	if err != nil {
		t.Fatalf("ListCitizens after update: %v", err)
	}
	if list[0].Address != "42 New Ave" {
		t.Fatalf("expected updated address, got %q", list[0].Address)
	}

	if err := session.DeleteCitizen(ctx, id); err != nil {
		t.Fatalf("DeleteCitizen: %v", err)
	}
	list, err = session.ListCitizens(ctx)
	if err != nil {
		t.Fatalf("ListCitizens after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list)
	}
}

func TestSession_ServerErrorsAreReadable(t *testing.T) {
	session := newTestStack(t)
	ctx := context.Background()

	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	incomplete := testRecord()
	incomplete.Address = ""
	if _, err := session.CreateCitizen(ctx, incomplete); err == nil {
		t.Fatal("expected validation error for incomplete record")
	}

	if err := session.DeleteCitizen(ctx, 9999); err == nil {
		t.Fatal("expected not-found error for unknown id")
	}
}

func TestSession_ExpiredTokenSurfacesOnNextCall(t *testing.T) {
	// Point the session at a server whose tokens are already expired.
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenService("test-secret-for-client-tests", -time.Minute)
	auth := service.NewAuthService(db.Users(), tokens, 4)
	citizens := service.NewCitizenService(db.Citizens())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, citizens, tokens)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
	session := client.NewSession(srv.URL, store)

	ctx := context.Background()
	if err := session.Register(ctx, "alice", "pw1", "clerk"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Login succeeds: the token is issued regardless of its expiry.
	if err := session.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// The expiry surfaces lazily, on the next authenticated call.
	if _, err := session.ListCitizens(ctx); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store := client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "nested", "token"))

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "abc123" {
		t.Fatalf("expected abc123, got %q", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load after clear: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token after clear, got %q", token)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
