// Command admintoken prints a signed token that unlocks the admin commands
// of affiliatepro. It reads the same configuration sources, so the secret
// given with -s, AFFILIATEPRO_ADMIN_SECRET or the config file must match.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/affiliatepro/internal/client/config"
	"github.com/dmitrijs2005/affiliatepro/internal/client/services"
	"github.com/dmitrijs2005/affiliatepro/internal/flagx"
)

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	subject := "admin"
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&subject, "u", subject, "token subject")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-u"})); err != nil {
		log.Fatalf("%v", err)
	}

	gate := services.NewAdminGate(cfg.AdminSecret, cfg.AdminTokenTTL)
	if !gate.Enabled() {
		log.Fatalf("admin secret is not set (use -s or AFFILIATEPRO_ADMIN_SECRET)")
	}

	token, err := gate.Issue(subject)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(token)

}
