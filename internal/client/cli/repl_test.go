package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	admin    bool

	calls []string
	args  map[string][]string
	fail  map[string]error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.fail[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) Register(ctx context.Context) error { return f.record("register", nil) }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Reset(ctx context.Context) error { return f.record("reset", nil) }
func (f *fakeExec) Tiers(ctx context.Context) error { return f.record("tiers", nil) }
func (f *fakeExec) Admin(ctx context.Context) error {
	f.admin = true
	return f.record("admin", nil)
}
func (f *fakeExec) Dashboard(ctx context.Context) error { return f.record("dashboard", nil) }
func (f *fakeExec) Products(ctx context.Context) error  { return f.record("products", nil) }
func (f *fakeExec) Link(ctx context.Context) error      { return f.record("link", nil) }
func (f *fakeExec) ProductLink(ctx context.Context, args []string) error {
	return f.record("plink", args)
}
func (f *fakeExec) Upgrade(ctx context.Context, args []string) error {
	return f.record("upgrade", args)
}
func (f *fakeExec) Withdraw(ctx context.Context) error { return f.record("withdraw", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn, f.admin = false, false
	return f.record("logout", nil)
}
func (f *fakeExec) Users(ctx context.Context) error { return f.record("users", nil) }
func (f *fakeExec) EditUser(ctx context.Context, args []string) error {
	return f.record("edituser", args)
}
func (f *fakeExec) DeleteUser(ctx context.Context, args []string) error {
	return f.record("deluser", args)
}
func (f *fakeExec) Click(ctx context.Context, args []string) error { return f.record("click", args) }
func (f *fakeExec) Sale(ctx context.Context, args []string) error  { return f.record("sale", args) }
func (f *fakeExec) AddProduct(ctx context.Context) error           { return f.record("addproduct", nil) }
func (f *fakeExec) EditProduct(ctx context.Context, args []string) error {
	return f.record("editproduct", args)
}
func (f *fakeExec) DeleteProduct(ctx context.Context, args []string) error {
	return f.record("delproduct", args)
}
func (f *fakeExec) SetTier(ctx context.Context, args []string) error {
	return f.record("settier", args)
}
func (f *fakeExec) Bank(ctx context.Context) error    { return f.record("bank", nil) }
func (f *fakeExec) Contact(ctx context.Context) error { return f.record("contact", nil) }
func (f *fakeExec) Withdrawals(ctx context.Context, args []string) error {
	return f.record("withdrawals", args)
}
func (f *fakeExec) Export(ctx context.Context) error { return f.record("export", nil) }

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(w io.Writer, a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, lines ...string) {
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, in, io.Discard)
}

func TestRunREPL_GuestThenMember(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	runLines(exec,
		"help",
		"dashboard",
		"login",
		"help",
		"dashboard",
		"plink 7",
		"upgrade Epic",
		"",
		"foobar",
		"exit",
		"tiers",
	)

	assert.Equal(t, []string{"login", "dashboard", "plink", "upgrade"}, exec.calls)
	assert.Equal(t, []string{"7"}, exec.args["plink"])
	assert.Equal(t, []string{"Epic"}, exec.args["upgrade"])
	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, *out, memberHelp)
	assert.Contains(t, *out, "Please login first.")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "ap (status)> ")
}

func TestRunREPL_AdminCommandsNeedAdmin(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{}

	runLines(exec,
		"users",
		"admin",
		"users",
		"edituser u1",
		"deluser u2",
		"click u3",
		"sale u4 12",
		"addproduct",
		"editproduct 1",
		"delproduct 2",
		"settier Master 150000 9",
		"bank",
		"contact",
		"withdrawals off 75000",
		"export",
		"help",
	)

	assert.Equal(t, []string{
		"admin", "users", "edituser", "deluser", "click", "sale", "addproduct", "editproduct",
		"delproduct", "settier", "bank", "contact", "withdrawals", "export",
	}, exec.calls)
	assert.Equal(t, []string{"u4", "12"}, exec.args["sale"])
	assert.Equal(t, []string{"Master", "150000", "9"}, exec.args["settier"])
	assert.Equal(t, []string{"off", "75000"}, exec.args["withdrawals"])
	assert.Contains(t, *out, "Admin access required: use 'admin' first.")
	assert.Contains(t, *out, adminHelp)
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	out := capturePrint(t)
	exec := &fakeExec{fail: map[string]error{
		"register": common.ErrDuplicateEmail,
		"reset":    errors.New("disk on fire"),
	}}

	runLines(exec, "register", "reset", "quit")

	assert.Contains(t, *out, "Error: that email is already registered")
	assert.Contains(t, *out, "Error: disk on fire")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrint(t)
	exec := &fakeExec{}
	runLines(exec, "register")
	assert.Equal(t, []string{"register"}, exec.calls, "a last line without newline is still run")
}
