package main

import (
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/folio/portfolio"
	"github.com/Zachkp/folio/tui"
)

func main() {
	timeout := 10 * time.Second
	if raw := os.Getenv("FOLIO_API_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	client := portfolio.NewClient(os.Getenv("FOLIO_API_URL"), portfolio.WithTimeout(timeout))
	m := tui.New(portfolio.NewLoader(client))
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
