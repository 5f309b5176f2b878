package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursework/internal/client/api"
	"github.com/dmitrijs2005/coursework/internal/client/config"
)

// now is a test seam for the save-file timestamp.
var now = time.Now

// apiClient is the part of api.Client the CLI uses.
type apiClient interface {
	Login(ctx context.Context, username, password string) (*api.Response, error)
	GetProducts(ctx context.Context, token string) (*api.Response, error)
	GetProduct(ctx context.Context, token string, id int64) (*api.Response, error)
	AddProduct(ctx context.Context, token, name string, description *string, price float64) (*api.Response, error)
}

// session is the logged-in state. A zero session means logged out.
type session struct {
	token     string
	username  string
	role      string
	expiresAt string
}

type App struct {
	config  *config.Config
	client  apiClient
	reader  *bufio.Reader
	out     io.Writer
	stdinFd int

	session session
	stored  json.RawMessage
}

func NewApp(c *config.Config) *App {
	return &App{
		config:  c,
		client:  api.NewClient(c.ServerBaseURL, c.RequestTimeout),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		stdinFd: int(os.Stdin.Fd()),
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.token != ""
}

// Run alternates between the login loop and the menu until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "=== ProductClient (Go CLI) ===")
	fmt.Fprintf(a.out, "API Base URL: %s\n", a.config.ServerBaseURL)

	for {
		if !a.isLoggedIn() {
			quit, err := a.loginLoop(ctx)
			if err != nil || quit {
				return endOfInput(err)
			}
		}

		quit, err := a.menu(ctx)
		if err != nil || quit {
			return endOfInput(err)
		}
	}
}

// endOfInput treats a closed stdin as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// loginLoop prompts until a login succeeds. It reports quit when the user
// types "exit".
func (a *App) loginLoop(ctx context.Context) (bool, error) {
	for !a.isLoggedIn() {
		username, err := GetSimpleText(a.reader, "\nUsername (admin/privuser) or 'exit': ", a.out)
		if err != nil {
			return false, err
		}
		if strings.EqualFold(username, "exit") {
			fmt.Fprintln(a.out, "Exiting.")
			return true, nil
		}

		password, err := GetPassword(a.reader, a.stdinFd, a.out)
		if err != nil {
			return false, err
		}

		if err := a.login(ctx, username, password); err != nil {
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
	}
	return false, nil
}

func (a *App) login(ctx context.Context, username, password string) error {
	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Login status: %d\n", resp.StatusCode)
	if resp.StatusCode != 200 {
		printBody(a.out, "Login error body", resp.Body)
		return fmt.Errorf("server answered %d", resp.StatusCode)
	}

	printBody(a.out, "Login response", resp.Body)

	res, err := resp.DecodeLogin()
	if err != nil {
		return err
	}

	a.session = session{token: res.Token, username: res.Username, role: res.Role, expiresAt: res.ExpiresAt}
	fmt.Fprintf(a.out, "\nLogged in as %s (role: %s), token expires at: %s (UTC)\n",
		res.Username, res.Role, res.ExpiresAt)
	return nil
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\n=== Main Menu ===")
	fmt.Fprintf(a.out, "Current user: %s (role: %s)\n", a.session.username, a.session.role)
	fmt.Fprintln(a.out, "1) GetProducts")
	fmt.Fprintln(a.out, "2) GetProduct(id) and store JSON object")
	fmt.Fprintln(a.out, "3) AddProduct (admin only; non-admin should get 403)")
	fmt.Fprintln(a.out, "4) Show last stored product JSON")
	fmt.Fprintln(a.out, "5) Save last stored product JSON to file")
	fmt.Fprintln(a.out, "9) Logout")
	fmt.Fprintln(a.out, "0) Exit")
}

// menu shows the menu once and runs the chosen option.
func (a *App) menu(ctx context.Context) (bool, error) {
	a.printMenu()

	choice, err := GetSimpleText(a.reader, "Choose option: ", a.out)
	if err != nil {
		return false, err
	}

	switch choice {
	case "1":
		a.listProducts(ctx)
	case "2":
		return false, a.getProduct(ctx)
	case "3":
		return false, a.addProduct(ctx)
	case "4":
		a.showStored()
	case "5":
		a.saveStored()
	case "9":
		fmt.Fprintln(a.out, "Logging out...")
		a.session = session{}
		a.stored = nil
	case "0":
		fmt.Fprintln(a.out, "Exiting.")
		return true, nil
	default:
		fmt.Fprintln(a.out, "Unknown option.")
	}
	return false, nil
}

func (a *App) listProducts(ctx context.Context) {
	resp, err := a.client.GetProducts(ctx, a.session.token)
	if err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "GetProducts status: %d\n", resp.StatusCode)
	printBody(a.out, "Response", resp.Body)
}

func (a *App) getProduct(ctx context.Context) error {
	s, err := GetSimpleText(a.reader, "Enter Product ID: ", a.out)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if !isDigits(s) || err != nil {
		fmt.Fprintln(a.out, "Invalid ID.")
		return nil
	}

	// Any fetch that does not yield a product drops the stored one.
	resp, err := a.client.GetProduct(ctx, a.session.token, id)
	if err != nil {
		a.stored = nil
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "GetProduct(%d) status: %d\n", id, resp.StatusCode)

	if resp.StatusCode != 200 || !json.Valid(resp.Body) {
		a.stored = nil
		printBody(a.out, "Error", resp.Body)
		return nil
	}

	printBody(a.out, "Product JSON", resp.Body)
	a.stored = append(json.RawMessage(nil), resp.Body...)
	fmt.Fprintln(a.out, "Stored product JSON object in memory.")
	return nil
}

func (a *App) addProduct(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Product name: ", a.out)
	if err != nil {
		return err
	}

	desc, err := GetSimpleText(a.reader, "Description (optional): ", a.out)
	if err != nil {
		return err
	}
	var description *string
	if desc != "" {
		description = &desc
	}

	price, err := GetFloat(a.reader, "Price: ", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.AddProduct(ctx, a.session.token, name, description, price)
	if err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "AddProduct status: %d\n", resp.StatusCode)
	printBody(a.out, "Response", resp.Body)
	return nil
}

func (a *App) showStored() {
	if a.stored == nil {
		fmt.Fprintln(a.out, "No product JSON stored yet.")
		return
	}
	pretty, _ := indent(a.stored)
	fmt.Fprintln(a.out, "Last stored product JSON:")
	fmt.Fprintln(a.out, pretty)
}

func (a *App) saveStored() {
	if a.stored == nil {
		fmt.Fprintln(a.out, "No product JSON stored yet.")
		return
	}

	path := filepath.Join(a.config.SaveDir, saveFileName(a.stored, now()))
	pretty, _ := indent(a.stored)

	if err := os.WriteFile(path, []byte(pretty+"\n"), 0o644); err != nil {
		fmt.Fprintf(a.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Saved to file: %s\n", path)
}

// saveFileName builds product_<id>_<YYYYMMDD_HHMMSS>.json from the product's
// id, or "unknown" when it has none, and the UTC time t.
func saveFileName(product json.RawMessage, t time.Time) string {
	id := "unknown"

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(product, &fields); err == nil {
		if raw, ok := fields["id"]; ok && !isNullJSON(raw) {
			var s string
			if json.Unmarshal(raw, &s) == nil {
				id = s
			} else {
				id = string(raw)
			}
		}
	}

	return fmt.Sprintf("product_%s_%s.json", id, t.UTC().Format("20060102_150405"))
}

func isNullJSON(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
