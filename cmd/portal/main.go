package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aussiebroadwan/acsportal/internal/portal/app"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file loaded before reading the environment")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("acs-portal", app.BuildVersion)
		return
	}

	// Used until the application builds its own logger from the config.
	boot := slogx.New(slogx.Config{Service: "acs-portal", Version: app.BuildVersion, Format: "text", Output: os.Stderr})

	if err := app.LoadDotEnv(*envFile); err != nil {
		boot.Error("failed to load dotenv file", "path", *envFile, "error", err)
		os.Exit(2)
	}

	cfg := app.LoadConfig()
	if err := cfg.Validate(); err != nil {
		boot.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	application, err := app.New(cfg)
	if err != nil {
		boot.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		boot.Error("application error", "error", err)
		os.Exit(1)
	}
}
