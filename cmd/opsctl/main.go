// opsctl is the organizer's terminal for desk operations: resolving
// scanned codes, checking participants into rounds and submitting round
// results, against a running Melinia API.
//
// Credentials come from MELINIA_EMAIL and MELINIA_PASSWORD (or a .env
// file in the working directory).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Melinia-CIT/melinia-api/internal/client"
	"github.com/Melinia-CIT/melinia-api/internal/domain"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "opsctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("opsctl", flag.ExitOnError)
	server := global.String("server", "http://localhost:8080", "API base URL")
	global.Usage = usage
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage()
		return fmt.Errorf("a command is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := login(ctx, *server)
	if err != nil {
		return err
	}

	switch rest[0] {
	case "lookup":
		return runLookup(ctx, c, rest[1:])
	case "checkin":
		return runCheckIn(ctx, c, rest[1:])
	case "results":
		return runResults(ctx, c, rest[1:])
	case "search":
		return runSearch(ctx, c, rest[1:])
	default:
		usage()
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: opsctl [-server URL] <command> [flags]

commands:
  lookup   -event N -round N -code CODE     resolve a scanned or typed code
  checkin  -event N -round N -codes A,B[,C] [-team CODE]
  results  -event N -round N -file FILE     submit a results batch (JSON array)
  search   -q QUERY                         search participants`)
}

func login(ctx context.Context, server string) (*client.Client, error) {
	email := os.Getenv("MELINIA_EMAIL")
	password := os.Getenv("MELINIA_PASSWORD")
	if email == "" || password == "" {
		return nil, fmt.Errorf("MELINIA_EMAIL and MELINIA_PASSWORD must be set")
	}

	c := client.New(server, &client.MemoryTokenStore{})
	user, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed -> %w", err)
	}

	fmt.Fprintf(os.Stderr, "logged in as %v %v (%v)\n", user.FirstName, user.LastName, user.Role)

	return c, nil
}

func runLookup(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	eventID := fs.Uint("event", 0, "event ID")
	roundNo := fs.Int("round", 1, "round number")
	code := fs.String("code", "", "raw code or scanner payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *eventID == 0 || *code == "" {
		return fmt.Errorf("lookup needs -event and -code")
	}

	result, err := c.Lookup(ctx, *eventID, *roundNo, *code)
	if err != nil {
		return err
	}

	switch result.Mode {
	case domain.LookupSolo:
		printEntry(*result.Solo)
	case domain.LookupTeam:
		fmt.Printf("team %v (%v)\n", result.Team.Name, result.Team.TeamCode)
		for _, member := range result.Team.Members {
			printEntry(member)
		}
	}

	return nil
}

func printEntry(e domain.RosterEntry) {
	state := "eligible"
	if !e.Eligible {
		state = "NOT ELIGIBLE"
	}
	if e.CheckedIn {
		state += ", already checked in"
	}
	fmt.Printf("  %v  %v %v  [%v]\n", e.User.Code, e.User.FirstName, e.User.LastName, state)
}

func runCheckIn(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("checkin", flag.ExitOnError)
	eventID := fs.Uint("event", 0, "event ID")
	roundNo := fs.Int("round", 1, "round number")
	codes := fs.String("codes", "", "comma-separated participant codes")
	team := fs.String("team", "", "team code (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *eventID == 0 || *codes == "" {
		return fmt.Errorf("checkin needs -event and -codes")
	}

	var teamCode *string
	if *team != "" {
		teamCode = team
	}

	summary, err := c.CheckIn(ctx, *eventID, *roundNo, strings.Split(*codes, ","), teamCode)
	if err != nil {
		return err
	}

	fmt.Printf("checked in: %v\n", strings.Join(summary.CheckedIn, ", "))
	if len(summary.AlreadyCheckedIn) > 0 {
		fmt.Printf("already checked in: %v\n", strings.Join(summary.AlreadyCheckedIn, ", "))
	}

	return nil
}

func runResults(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	eventID := fs.Uint("event", 0, "event ID")
	roundNo := fs.Int("round", 1, "round number")
	file := fs.String("file", "", "path to a JSON array of result items")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *eventID == 0 || *file == "" {
		return fmt.Errorf("results needs -event and -file")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	var items []domain.ResultAssignment
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("parsing %v -> %w", *file, err)
	}

	report, err := c.AssignResults(ctx, *eventID, *roundNo, items)
	if err != nil {
		return err
	}

	fmt.Printf("attempted %v, succeeded %v\n", report.Attempted, report.Succeeded)
	for _, e := range report.UserErrors {
		fmt.Printf("  user %v: %v\n", e.Code, e.Reason)
	}
	for _, e := range report.TeamErrors {
		fmt.Printf("  team %v: %v\n", e.Code, e.Reason)
	}
	if len(report.UserErrors)+len(report.TeamErrors) > 0 {
		return fmt.Errorf("%v item(s) failed", len(report.UserErrors)+len(report.TeamErrors))
	}

	return nil
}

func runSearch(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "name, email or code fragment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *query == "" {
		return fmt.Errorf("search needs -q")
	}

	users, err := c.SearchUsers(ctx, *query)
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%v  %v %v  %v  (%v/%v)\n", u.Code, u.FirstName, u.LastName, u.Email, u.Status, u.PaymentStatus)
	}

	return nil
}
