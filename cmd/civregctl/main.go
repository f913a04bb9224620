// Command civregctl is a terminal client for the citizen registry. It plays
// the role of the browser application: it logs in once, keeps the token in
// the user config dir, and attaches it to every call.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/civreg/civreg/internal/client"
)

// Default server base URL; can be overridden with CIVREG_SERVER or --server.
var serverBaseURL = "http://localhost:8080"

func main() {
	cmd := flag.String("cmd", "list", "Command: register|login|logout|list|create|update|delete")
	serverFlag := flag.String("server", "", "Override server base URL")

	username := flag.String("username", "", "Username (register/login)")
	password := flag.String("password", "", "Password (register/login)")
	role := flag.String("role", "clerk", "Role (register)")

	id := flag.Int64("id", 0, "Citizen id (update/delete)")
	firstName := flag.String("first-name", "", "First name")
	lastName := flag.String("last-name", "", "Last name")
	birthDate := flag.String("birth-date", "", "Birth date (YYYY-MM-DD)")
	address := flag.String("address", "", "Address")
	maritalStatus := flag.String("marital-status", "", "Marital status: single|married|divorced|widowed")
	citizenship := flag.String("citizenship", "", "Citizenship")

	search := flag.String("search", "", "Filter list by first name, last name, or address")
	page := flag.Int("page", 0, "Zero-based page index (list)")
	pageSize := flag.Int("page-size", 5, "Records per page: 5, 10, or 25 (list)")

	flag.Parse()

	if env := os.Getenv("CIVREG_SERVER"); env != "" {
		serverBaseURL = strings.TrimRight(env, "/")
	}
	if *serverFlag != "" {
		serverBaseURL = strings.TrimRight(*serverFlag, "/")
	}

	store, err := client.NewFileTokenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	session := client.NewSession(serverBaseURL, store)
	ctx := context.Background()

	record := client.Citizen{
		FirstName:     *firstName,
		LastName:      *lastName,
		BirthDate:     *birthDate,
		Address:       *address,
		MaritalStatus: *maritalStatus,
		Citizenship:   *citizenship,
	}

	switch *cmd {
	case "register":
		err = session.Register(ctx, *username, *password, *role)
		if err == nil {
			fmt.Println("User registered")
		}
	case "login":
		err = session.Login(ctx, *username, *password)
		if err == nil {
			fmt.Println("Logged in")
		}
	case "logout":
		err = session.Logout()
		if err == nil {
			fmt.Println("Logged out")
		}
	case "list":
		err = listCitizens(ctx, session, *search, *page, *pageSize)
	case "create":
		var newID int64
		newID, err = session.CreateCitizen(ctx, record)
		if err == nil {
			fmt.Printf("Citizen added with id %d\n", newID)
		}
	case "update":
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "--id required")
			os.Exit(1)
		}
		err = session.UpdateCitizen(ctx, *id, record)
		if err == nil {
			fmt.Println("Citizen updated")
		}
	case "delete":
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "--id required")
			os.Exit(1)
		}
		err = session.DeleteCitizen(ctx, *id)
		if err == nil {
			fmt.Println("Citizen deleted")
		}
	default:
		fmt.Fprintln(os.Stderr, "Unknown command:", *cmd)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// listCitizens fetches the full snapshot and applies the view's filter and
// pagination locally, the way the browser table does.
func listCitizens(ctx context.Context, session *client.Session, search string, page, pageSize int) error {
	records, err := session.ListCitizens(ctx)
	if err != nil {
		return err
	}

	view := client.NewListView()
	view.SetRecords(records)
	view.SetQuery(search)
	view.SetPageSize(pageSize)
	view.SetPage(page)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFIRST NAME\tLAST NAME\tBIRTH DATE\tADDRESS\tMARITAL STATUS\tCITIZENSHIP")
	for _, c := range view.Visible() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.FirstName, c.LastName, c.BirthDate, c.Address, c.MaritalStatus, c.Citizenship)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("page %d, showing %d of %d matching records\n",
		view.Page(), len(view.Visible()), view.TotalFiltered())
	return nil
}
