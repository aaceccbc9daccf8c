package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/affiliatepro/internal/client/config"
	"github.com/dmitrijs2005/affiliatepro/internal/client/database"
	"github.com/dmitrijs2005/affiliatepro/internal/client/repositories/documents"
	"github.com/dmitrijs2005/affiliatepro/internal/client/services"
	"github.com/dmitrijs2005/affiliatepro/internal/logging"
)

// App wires the services to the terminal.
type App struct {
	config *config.Config
	db     *sql.DB
	logger logging.Logger

	membership services.MembershipCatalog
	users      services.UserDirectory
	products   services.ProductCatalog
	session    *services.Session
	settings   services.SettingsService
	affiliate  services.AffiliateService
	export     services.ExportService
	gate       services.AdminGate

	adminSubject string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the database named in c and builds the services over it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := database.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	return newApp(c, db, logger, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, logger logging.Logger, in io.Reader, out io.Writer) *App {
	repo := documents.NewSQLiteRepository(db)

	membership := services.NewMembershipCatalog(repo, logger.With("component", "membership"))
	session := services.NewSession(repo, membership, logger.With("component", "session"))
	users := services.NewUserDirectory(repo, session, logger.With("component", "users"))
	settings := services.NewSettingsService(db, logger.With("component", "settings"))

	return &App{
		config:     c,
		db:         db,
		logger:     logger,
		membership: membership,
		users:      users,
		products:   services.NewProductCatalog(repo, membership, logger.With("component", "products")),
		session:    session,
		settings:   settings,
		affiliate: services.NewAffiliateService(repo, membership, users, settings,
			c.ReferralBaseURL, logger.With("component", "affiliate")),
		export: services.NewExportService(users, services.ExportOptions{
			Dir:            c.ExportDir,
			S3Bucket:       c.S3Bucket,
			S3Region:       c.S3Region,
			S3BaseEndpoint: c.S3BaseEndpoint,
			S3AccessKey:    c.S3AccessKey,
			S3SecretKey:    c.S3SecretKey,
		}, logger.With("component", "export")),
		gate:   services.NewAdminGate(c.AdminSecret, c.AdminTokenTTL),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run restores the previous session, if any, and runs the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to AffiliatePro CLI (type 'help' for commands)")

	u, err := a.session.Restore(ctx, a.users)
	if err != nil {
		a.logger.Error(ctx, "restore session", "error", err)
	} else if u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.DisplayName())
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) isAdmin() bool {
	return a.adminSubject != ""
}

func (a *App) getStatus() string {
	s := "guest"
	if u, ok := a.session.Current(); ok {
		s = fmt.Sprintf("%s %s", u.DisplayName(), u.Level)
	}
	if a.isAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) prompt(text string) (string, error) {
	return GetSimpleText(a.reader, text, a.out)
}
