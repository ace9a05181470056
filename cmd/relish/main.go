package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/relishdb/relish/internal/app"
	"github.com/relishdb/relish/internal/config"
	"github.com/relishdb/relish/internal/db"
	"github.com/relishdb/relish/internal/logging"
	"github.com/relishdb/relish/internal/tui"
)

func main() {
	// Optional; used to pick up RELISH_LOG during development.
	_ = godotenv.Load()

	log, closeLog, err := logging.New("relish.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "relish: logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "relish: config: %v\n", err)
		os.Exit(1)
	}

	registry := db.NewRegistry()
	defer registry.Clear()

	service := app.NewService(registry, log)
	model := tui.NewModel(service, cfg, config.OSKeyring{}, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "relish: %v\n", err)
		os.Exit(1)
	}
}
