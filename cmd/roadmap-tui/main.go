package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/roadmap/internal/config"
	"github.com/rgehrsitz/roadmap/internal/tui"
)

func main() {
	var model tui.Model
	if len(os.Args) > 1 {
		configPath := os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Roadmap file not found: %s\n", configPath)
			os.Exit(1)
		}
		model = tui.NewModel(configPath)
	} else {
		// without a file the example roadmap is explored read-only
		model = tui.NewModelWithConfig(config.NewInputParser().CreateExampleConfiguration())
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
