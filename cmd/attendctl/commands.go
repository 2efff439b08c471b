package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-attend/client"
	"go-attend/internal/shared/dateutil"

	"golang.org/x/sync/errgroup"
)

// cmdStatus shows today's state with a live elapsed counter. The counter
// ticks every second from local recomputation; the record itself refetches
// on a slower timer.
func cmdStatus(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	refresh := fs.Duration("refresh", 30*time.Second, "record refetch interval")
	fs.Parse(args)

	if _, err := gate(store, client.ViewDashboard); err != nil {
		return err
	}

	history, err := api.MyHistory(ctx, 1)
	if err != nil {
		return err
	}
	records := history.Attendance

	printStatus(records)
	if !*watch {
		return nil
	}

	displayTick := time.NewTicker(time.Second)
	defer displayTick.Stop()
	refreshTick := time.NewTicker(*refresh)
	defer refreshTick.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-displayTick.C:
			printStatus(records)
		case <-refreshTick.C:
			// A failed background refresh keeps the previous state.
			if h, err := api.MyHistory(ctx, 1); err == nil {
				records = h.Attendance
			}
		case <-quit:
			fmt.Println()
			return nil
		}
	}
}

func printStatus(records []client.Record) {
	ds := client.DeriveToday(records, time.Now())
	if ds.Open {
		fmt.Printf("\r%s  clocked in  %s ", ds.Status, ds.ElapsedDisplay())
		return
	}
	fmt.Printf("\r%s  %s ", ds.Status, ds.ElapsedDisplay())
}

// cmdMark clocks a user in or out. Clocking out is final for the day, so it
// routes through the confirmation prompt before the request fires.
func cmdMark(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("mark requires a subcommand: in | out")
	}
	sub, rest := args[0], args[1:]
	if sub != "in" && sub != "out" {
		return fmt.Errorf("unknown mark subcommand %q", sub)
	}

	fs := flag.NewFlagSet("mark "+sub, flag.ExitOnError)
	userID := fs.String("user", "", "user id (default: yourself)")
	date := fs.String("date", dateutil.TodayKey(), "date YYYY-MM-DD")
	fs.Parse(rest)

	sess, err := gate(store, client.ViewAttendanceControl)
	if err != nil {
		return err
	}
	target := *userID
	if target == "" {
		target = sess.User.ID
	}

	if sub == "in" {
		rec, err := api.MarkArrival(ctx, target, *date)
		if err != nil {
			return err
		}
		fmt.Printf("clocked in %s on %s", target, rec.Date)
		if rec.LoginTime != nil {
			fmt.Printf(" at %s", *rec.LoginTime)
		}
		fmt.Println()
		return nil
	}

	if !confirm(fmt.Sprintf("clock out %s for %s?", target, *date)) {
		return nil
	}
	rec, err := api.MarkExit(ctx, target, *date)
	if err != nil {
		return err
	}
	fmt.Printf("clocked out %s on %s, worked %s\n",
		target, rec.Date, dateutil.FormatHoursToHMS(rec.WorkingHours))
	return nil
}

func cmdHistory(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	days := fs.Int("days", 30, "window in days")
	userID := fs.String("user", "", "another user's id (admin)")
	fs.Parse(args)

	// Reading someone else's history is a roster-level view.
	view := client.ViewHistory
	if *userID != "" {
		view = client.ViewRoster
	}
	if _, err := gate(store, view); err != nil {
		return err
	}

	var history client.History
	var err error
	if *userID != "" {
		history, err = api.UserHistory(ctx, *userID, *days)
	} else {
		history, err = api.MyHistory(ctx, *days)
	}
	if err != nil {
		return err
	}

	s := history.Summary
	fmt.Printf("last %d days: %d present, %d absent, %d excused, %s worked\n",
		*days, s.Presences, s.Absences, s.Leaves,
		dateutil.FormatHoursToHMS(&s.TotalOfficeHours))
	for _, r := range history.Attendance {
		fmt.Printf("  %s  %-8s %s\n", r.Date, r.Status, dateutil.FormatHoursToHMS(r.WorkingHours))
	}
	return nil
}

// cmdDashboard fetches the roster and the pending-excuse count concurrently;
// the two reads are independent and merged by field.
func cmdDashboard(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	days := fs.Int("days", 30, "window in days")
	fs.Parse(args)

	sess, err := gate(store, client.ViewRoster)
	if err != nil {
		return err
	}

	var (
		roster  []client.EmployeeAttendance
		pending []client.Excuse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = api.AllEmployees(gctx, *days)
		return err
	})
	if sess.User.Role == "superadmin" {
		g.Go(func() error {
			var err error
			pending, err = api.PendingExcuses(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	present, absent := client.CountPresent(roster, time.Now())
	fmt.Printf("%d employees: %d present today, %d absent\n", len(roster), present, absent)
	if sess.User.Role == "superadmin" {
		fmt.Printf("%d excuse(s) awaiting decision\n", len(pending))
	}
	for _, emp := range roster {
		ds := client.DeriveToday(emp.Attendance, time.Now())
		fmt.Printf("  %-20s %-8s %s\n", emp.User.Username, ds.Status, ds.ElapsedDisplay())
	}
	return nil
}

func cmdExcuse(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("excuse requires a subcommand: submit | list | pending | approve | reject")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "submit":
		fs := flag.NewFlagSet("excuse submit", flag.ExitOnError)
		date := fs.String("date", dateutil.TodayKey(), "date YYYY-MM-DD")
		message := fs.String("message", "", "reason for the absence")
		fs.Parse(rest)

		if _, err := gate(store, client.ViewExcuse); err != nil {
			return err
		}

		e, err := api.SubmitExcuse(ctx, *date, *message)
		if err != nil {
			return err
		}
		fmt.Printf("submitted excuse %s for %s (%s)\n", e.ID, e.Date, e.Status)
		return nil

	case "list":
		if _, err := gate(store, client.ViewExcuse); err != nil {
			return err
		}

		list, err := api.MyExcuses(ctx)
		if err != nil {
			return err
		}
		for _, e := range list {
			fmt.Printf("  %s  %-8s %s\n", e.Date, e.Status, e.Message)
		}
		return nil

	case "pending":
		if _, err := gate(store, client.ViewExcuseApprovals); err != nil {
			return err
		}

		list, err := api.PendingExcuses(ctx)
		if err != nil {
			return err
		}
		for _, e := range list {
			fmt.Printf("  %s  %s  %s: %s\n", e.ID, e.Date, e.Username, e.Message)
		}
		return nil

	case "approve", "reject":
		fs := flag.NewFlagSet("excuse "+sub, flag.ExitOnError)
		id := fs.String("id", "", "excuse id")
		fs.Parse(rest)
		if *id == "" {
			return fmt.Errorf("excuse %s requires -id", sub)
		}

		if _, err := gate(store, client.ViewExcuseApprovals); err != nil {
			return err
		}

		status := "Approved"
		if sub == "reject" {
			status = "Rejected"
		}
		if !confirm(fmt.Sprintf("%s excuse %s?", sub, *id)) {
			return nil
		}

		// Act-then-refetch: show the decided list only after the mutation
		// resolves.
		e, err := api.DecideExcuse(ctx, *id, status)
		if err != nil {
			return err
		}
		fmt.Printf("excuse %s is now %s\n", e.ID, e.Status)

		if remaining, err := api.PendingExcuses(ctx); err == nil {
			fmt.Printf("%d still pending\n", len(remaining))
		}
		return nil

	default:
		return fmt.Errorf("unknown excuse subcommand %q", sub)
	}
}

func cmdUsers(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("users requires a subcommand: list | create | update | role | delete")
	}
	sub, rest := args[0], args[1:]

	sess, err := gate(store, client.ViewUserManagement)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		list, err := api.Users(ctx)
		if err != nil {
			return err
		}
		for _, u := range list {
			fmt.Printf("  %s  %-20s %-30s %s\n", u.ID, u.Username, u.Email, u.Role)
		}
		return nil

	case "create":
		fs := flag.NewFlagSet("users create", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "initial password")
		role := fs.String("role", "user", "user | admin | superadmin")
		fs.Parse(rest)

		u, err := api.CreateUser(ctx, *username, *email, *password, *role)
		if err != nil {
			return err
		}
		fmt.Printf("created %s (%s)\n", u.Username, u.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("users update", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		username := fs.String("username", "", "new username")
		email := fs.String("email", "", "new email")
		role := fs.String("role", "", "user | admin | superadmin")
		password := fs.String("password", "", "new password (optional)")
		fs.Parse(rest)
		if *id == "" || *username == "" || *email == "" || *role == "" {
			return fmt.Errorf("users update requires -id, -username, -email and -role")
		}

		u, err := api.UpdateUser(ctx, *id, *username, *email, *role, *password)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s (%s, %s)\n", u.Username, u.Email, u.Role)
		return nil

	case "role":
		fs := flag.NewFlagSet("users role", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		role := fs.String("role", "", "user | admin | superadmin")
		fs.Parse(rest)
		if *id == "" || *role == "" {
			return fmt.Errorf("users role requires -id and -role")
		}

		u, err := api.ChangeRole(ctx, *id, *role)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", u.Username, u.Role)
		return nil

	case "delete":
		fs := flag.NewFlagSet("users delete", flag.ExitOnError)
		id := fs.String("id", "", "user id")
		fs.Parse(rest)
		if *id == "" {
			return fmt.Errorf("users delete requires -id")
		}

		if !client.CanDeleteUser(sess.User.ID, *id) {
			return fmt.Errorf("you cannot delete your own account")
		}
		if !confirm(fmt.Sprintf("delete user %s?", *id)) {
			return nil
		}
		if err := api.DeleteUser(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		return fmt.Errorf("unknown users subcommand %q", sub)
	}
}

func cmdProfile(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("profile requires a subcommand: rename | password")
	}
	sub, rest := args[0], args[1:]

	if _, err := gate(store, client.ViewProfile); err != nil {
		return err
	}

	switch sub {
	case "rename":
		fs := flag.NewFlagSet("profile rename", flag.ExitOnError)
		username := fs.String("username", "", "new display name")
		fs.Parse(rest)
		if *username == "" {
			return fmt.Errorf("profile rename requires -username")
		}

		p, err := api.UpdateMe(ctx, *username)
		if err != nil {
			return err
		}
		fmt.Printf("renamed to %s\n", p.Username)
		return nil

	case "password":
		fs := flag.NewFlagSet("profile password", flag.ExitOnError)
		current := fs.String("current", "", "current password")
		next := fs.String("new", "", "new password")
		repeat := fs.String("confirm", "", "new password again")
		fs.Parse(rest)
		if *current == "" || *next == "" {
			return fmt.Errorf("profile password requires -current, -new and -confirm")
		}

		// Mismatch and length checks fail here, before any network call.
		if err := api.ChangePassword(ctx, *current, *next, *repeat); err != nil {
			return err
		}
		fmt.Println("password updated")
		return nil

	default:
		return fmt.Errorf("unknown profile subcommand %q", sub)
	}
}

func cmdRules(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("rules requires a subcommand: show | edit")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		// Every signed-in role may read the rules.
		if _, err := gate(store, client.ViewDashboard); err != nil {
			return err
		}

		r, err := api.Rules(ctx)
		if err != nil {
			return err
		}
		fmt.Println(r.Content)
		if r.UpdatedAt != nil {
			fmt.Printf("(updated %s)\n", *r.UpdatedAt)
		}
		return nil

	case "edit":
		fs := flag.NewFlagSet("rules edit", flag.ExitOnError)
		file := fs.String("file", "", "file holding the new rules text")
		fs.Parse(rest)
		if *file == "" {
			return fmt.Errorf("rules edit requires -file")
		}

		if _, err := gate(store, client.ViewRulesEditor); err != nil {
			return err
		}

		content, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		r, err := api.UpdateRules(ctx, string(content))
		if err != nil {
			return err
		}
		fmt.Printf("rules replaced (%d bytes)\n", len(r.Content))
		return nil

	default:
		return fmt.Errorf("unknown rules subcommand %q", sub)
	}
}

func cmdReport(ctx context.Context, api *client.Client, store client.Store, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	days := fs.Int("days", 30, "window in days")
	out := fs.String("out", "", "output path (default attendance-report-<today>.xlsx)")
	fs.Parse(args)

	if _, err := gate(store, client.ViewReports); err != nil {
		return err
	}

	data, err := api.ExportReport(ctx, *days)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("attendance-report-%s.xlsx", dateutil.TodayKey())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
	return nil
}
