package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/print-relay/internal/client"
)

func main() {
	server := flag.String("server", envOr("RELAY_SERVER_URL", "http://localhost:8080"), "print-relay server URL")
	themeFlag := flag.String("theme", os.Getenv("RELAY_THEME"), "UI theme (cyan, matrix, amber)")
	interval := flag.Duration("interval", 2*time.Second, "poll interval")
	limit := flag.Int("limit", 15, "number of recent jobs to show")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	theme := ThemeName(*themeFlag)
	if theme == "" {
		theme = ThemeCyan
	}
	if _, ok := palettes[theme]; !ok {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	src := client.New(*server, "")
	p := tea.NewProgram(initialModel(src, *server, theme, *interval, *limit), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("error running program", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
