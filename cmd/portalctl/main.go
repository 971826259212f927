// Command portalctl is a terminal client for the ACS portal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/aussiebroadwan/acsportal/internal/portal/session"
	"github.com/aussiebroadwan/acsportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

const usage = `usage: portalctl [-config path] [-v] <command> [args]

commands:
  login [cpf]                      log in with CPF and password
  logout                           end the session
  whoami                           show the current session
  open <tab>                       open dashboard, members, indicators, profile, news or payslip
  register [flags]                 submit a self-registration
  members list                     list members (admin)
  members delete <id>              delete a member (admin)
  members role <id> <ADMIN|ACS>    change a member's role (admin)
  members status <id> <status>     set Ativo, Pendente or Inativo (admin)
  members password <id>            reset a password
  indicators [aps|dental <code> <status> [value]]
  news                             latest public-health news
  card [id]                        print an ID card (default: yours)
  keys list|rotate [-retire]|retire <kid>
                                   manage session signing keys (master password)
  config set-server <url>          point portalctl at a server
`

// cli holds what every command needs.
type cli struct {
	client *portalsdk.Client
	holder *session.Holder
	prompt *prompter
	out    io.Writer
	logger *slog.Logger

	configPath string
	cfg        Config
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "config file")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configPath, *verbose, flag.Args()); err != nil {
		var apiErr *portalsdk.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "portalctl: %s (%s)\n", apiErr.Description, apiErr.Code)
		} else {
			fmt.Fprintf(os.Stderr, "portalctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, verbose bool, args []string) error {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger := slogx.New(slogx.Config{Service: "portalctl", Level: level, Format: "text", Output: os.Stderr})
	ctx = slogx.WithContext(ctx, logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	st, err := sqlite.NewStore(fmt.Sprintf("file:%s", cfg.StateFile))
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer st.Close()
	if err := st.ApplyMigrations(); err != nil {
		return fmt.Errorf("migrate state: %w", err)
	}

	c := &cli{
		client:     portalsdk.NewClient(cfg.ServerURL),
		holder:     session.Restore(ctx, &session.KVSlot{KV: st.KV()}, logger),
		prompt:     newPrompter(),
		out:        os.Stdout,
		logger:     logger,
		configPath: configPath,
		cfg:        cfg,
	}
	return c.dispatch(ctx, args)
}
