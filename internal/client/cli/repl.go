package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Reset(ctx context.Context) error
	Tiers(ctx context.Context) error
	Admin(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Products(ctx context.Context) error
	Link(ctx context.Context) error
	ProductLink(ctx context.Context, args []string) error
	Upgrade(ctx context.Context, args []string) error
	Withdraw(ctx context.Context) error
	Logout(ctx context.Context) error

	Users(ctx context.Context) error
	EditUser(ctx context.Context, args []string) error
	DeleteUser(ctx context.Context, args []string) error
	Click(ctx context.Context, args []string) error
	Sale(ctx context.Context, args []string) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	SetTier(ctx context.Context, args []string) error
	Bank(ctx context.Context) error
	Contact(ctx context.Context) error
	Withdrawals(ctx context.Context, args []string) error
	Export(ctx context.Context) error
}

const (
	guestHelp  = "Available commands: register, login, reset, tiers, admin, exit"
	memberHelp = "Available commands: dashboard, products, link, plink <id>, tiers, upgrade <tier>, withdraw, logout, exit"
	adminHelp  = "Admin commands: users, edituser <id>, deluser <id>, click <id>, sale <userID> <productID>, " +
		"addproduct, editproduct <id>, delproduct <id>, settier <tier> <price> <commission>, " +
		"bank, contact, withdrawals [on|off <min>], export"
)

var (
	memberCommands = map[string]bool{
		"dashboard": true, "products": true, "link": true, "plink": true, "upgrade": true, "withdraw": true,
	}
	adminCommands = map[string]bool{
		"users": true, "edituser": true, "deluser": true, "click": true, "sale": true,
		"addproduct": true, "editproduct": true, "delproduct": true, "settier": true,
		"bank": true, "contact": true, "withdrawals": true, "export": true,
	}
)

// runREPL starts a simple read–eval–print loop for the AffiliatePro CLI.
//
// It reads a line from in, parses the first token as the command and the
// rest as its arguments, and dispatches to methods on 'a'. Member commands
// need a logged-in user and admin commands an unlocked admin session; both
// are refused otherwise. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		printlnFn(out, fmt.Sprintf("ap %s> ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if memberCommands[cmd] && !a.isLoggedIn() {
			printlnFn(out, "Please login first.")
			continue
		}
		if adminCommands[cmd] && !a.isAdmin() {
			printlnFn(out, "Admin access required: use 'admin' first.")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			switch {
			case a.isLoggedIn():
				printlnFn(out, memberHelp)
			default:
				printlnFn(out, guestHelp)
			}
			if a.isAdmin() {
				printlnFn(out, adminHelp)
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "reset":
			cmdErr = a.Reset(ctx)
		case "tiers":
			cmdErr = a.Tiers(ctx)
		case "admin":
			cmdErr = a.Admin(ctx)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "products":
			cmdErr = a.Products(ctx)
		case "link":
			cmdErr = a.Link(ctx)
		case "plink":
			cmdErr = a.ProductLink(ctx, args)
		case "upgrade":
			cmdErr = a.Upgrade(ctx, args)
		case "withdraw":
			cmdErr = a.Withdraw(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "users":
			cmdErr = a.Users(ctx)
		case "edituser":
			cmdErr = a.EditUser(ctx, args)
		case "deluser":
			cmdErr = a.DeleteUser(ctx, args)
		case "click":
			cmdErr = a.Click(ctx, args)
		case "sale":
			cmdErr = a.Sale(ctx, args)
		case "addproduct":
			cmdErr = a.AddProduct(ctx)
		case "editproduct":
			cmdErr = a.EditProduct(ctx, args)
		case "delproduct":
			cmdErr = a.DeleteProduct(ctx, args)
		case "settier":
			cmdErr = a.SetTier(ctx, args)
		case "bank":
			cmdErr = a.Bank(ctx)
		case "contact":
			cmdErr = a.Contact(ctx)
		case "withdrawals":
			cmdErr = a.Withdrawals(ctx, args)
		case "export":
			cmdErr = a.Export(ctx)

		case "exit", "quit":
			printlnFn(out, "Bye!")
			return

		default:
			printlnFn(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(out, "Error:", describeError(cmdErr))
		}
	}
}
