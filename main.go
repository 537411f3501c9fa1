package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/acampos/foco/internal/backend"
	"github.com/acampos/foco/internal/config"
	"github.com/acampos/foco/internal/importer"
	"github.com/acampos/foco/internal/model"
	"github.com/acampos/foco/internal/store"
	"github.com/acampos/foco/internal/ui"
)

func main() {
	fileMode := flag.Bool("file", false, "use the single-file JSON backend")
	importPath := flag.String("import", "", "import tasks from a YAML file and exit")
	configPath := flag.String("config", config.ResolveConfigPath(), "config file location")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	client, err := newClient(cfg, *fileMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening backend: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	s := store.New(client, logger)
	s.Watch(backend.NewStaticAuth("local", ""))

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading import file: %v\n", err)
			os.Exit(1)
		}
		n, err := importer.Import(context.Background(), s, string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing (%d tasks created): %v\n", n, err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d tasks\n", n)
		return
	}

	p := tea.NewProgram(ui.NewModel(s, model.Color(cfg.DefaultColor)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the configured log file. The TUI owns the terminal,
// so without a log path the logger is silenced.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(f)
	logger.SetReportTimestamp(true)
	return logger, func() { f.Close() }, nil
}

func newClient(cfg config.Config, fileMode bool) (backend.Client, error) {
	if fileMode || cfg.Backend == config.BackendFile {
		return backend.NewFile(cfg.DataPath)
	}
	return backend.NewSQLite(cfg.DBPath)
}
