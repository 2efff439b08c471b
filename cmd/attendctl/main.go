// attendctl is a terminal client for the attendance API.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go-attend/client"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost:3000"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("ATTEND_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	path, err := client.DefaultSessionPath()
	if err != nil {
		fatal(err)
	}
	store := client.NewFileStore(path)
	api := client.New(baseURL, store)

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "login":
		err = cmdLogin(ctx, api, args)
	case "logout":
		err = api.Logout()
	case "me":
		err = cmdMe(api)
	case "status":
		err = cmdStatus(ctx, api, store, args)
	case "mark":
		err = cmdMark(ctx, api, store, args)
	case "history":
		err = cmdHistory(ctx, api, store, args)
	case "dashboard":
		err = cmdDashboard(ctx, api, store, args)
	case "excuse":
		err = cmdExcuse(ctx, api, store, args)
	case "users":
		err = cmdUsers(ctx, api, store, args)
	case "profile":
		err = cmdProfile(ctx, api, store, args)
	case "rules":
		err = cmdRules(ctx, api, store, args)
	case "report":
		err = cmdReport(ctx, api, store, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: attendctl <command> [flags]

commands:
  login       sign in and store the session
  logout      clear the stored session
  me          show the signed-in profile
  status      live clock-in status for today
  mark        in | out (clock a user in or out, admin)
  history     personal attendance history
  dashboard   roster overview (admin)
  excuse      submit | list | pending | approve | reject
  users       list | create | update | role | delete
  profile     rename | password
  rules       show | edit
  report      download the xlsx report`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "attendctl:", err)
	os.Exit(1)
}

// gate enforces the role-to-view table before a command's first fetch; a
// refused view costs zero network calls.
func gate(store client.Store, view client.View) (client.Session, error) {
	sess, decision := client.Gate(store, view)
	switch decision {
	case client.GateRedirectLogin:
		return client.Session{}, fmt.Errorf("not signed in; run attendctl login first")
	case client.GateRedirectDefault:
		return client.Session{}, fmt.Errorf("your role cannot open %s; try attendctl status", view)
	}
	return sess, nil
}

func cmdLogin(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	sess, err := api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", sess.User.Username, sess.User.Role)
	return nil
}

func cmdMe(api *client.Client) error {
	sess, err := api.Session()
	if err != nil {
		return err
	}
	if !sess.Authenticated() {
		return fmt.Errorf("not signed in")
	}
	fmt.Printf("%s <%s> role=%s id=%s\n", sess.User.Username, sess.User.Email, sess.User.Role, sess.User.ID)
	return nil
}

// confirm asks before a destructive action fires.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
