package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/andareed/siftly-grid/clipboard"
	"github.com/andareed/siftly-grid/config"
	"github.com/andareed/siftly-grid/logging"
	"github.com/andareed/siftly-grid/source"
	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 30 * time.Second

var logFile = flag.String("debug", "", "Write Debug Logs to file (overrides log.file)")

type startupOptions struct {
	rangeLabel string
	sortColumn string
	descending bool
	hide       []string
}

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "config file (default $SIFTLY_CONFIG or ~/.config/siftly/config.toml)")
	query := flag.String("query", "", "SQL query, required for SQLite sources")
	rangeLabel := flag.String("range", "", "initial date range preset, e.g. \"This Month\"")
	sortColumn := flag.String("sort", "", "initial sort column label")
	descending := flag.Bool("desc", false, "sort descending")
	hide := flag.String("hide", "", "comma separated column labels to hide")
	printFlag := flag.Bool("print", false, "print the filtered table to stdout and exit")

	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logPath := cfg.Log.File
	if *logFile != "" {
		logPath = *logFile
	}
	cleanup, err := logging.SetupLogging(logPath, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("siftly-grid %s: started", Version)

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: siftly-grid [--config file] [--debug debug.log] [--query SQL] [--range PRESET] [--sort COLUMN [--desc]] [--hide COLS] [--print] <file.csv|file.db>")
		os.Exit(1)
	}
	inputPath := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	tbl, err := source.Load(ctx, inputPath, *query)
	cancel()
	if err != nil {
		log.Fatalf("failed to load %q: %v", inputPath, err)
	}

	m, err := newModel(cfg, tbl, modelDeps{Now: time.Now, CopyText: clipboard.Copy})
	if err != nil {
		log.Fatalf("failed to build table from %q: %v", inputPath, err)
	}
	defer m.Close()
	m.InitialPath = inputPath

	opts := startupOptions{
		rangeLabel: *rangeLabel,
		sortColumn: *sortColumn,
		descending: *descending,
		hide:       splitLabels(*hide),
	}
	if err := m.applyStartup(opts); err != nil {
		log.Fatalf("%v", err)
	}

	if *printFlag {
		if err := printView(os.Stdout, m); err != nil {
			log.Fatalf("print: %v", err)
		}
		return
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

func splitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyStartup applies command line view options on top of the config defaults.
func (m *model) applyStartup(opts startupOptions) error {
	for _, label := range opts.hide {
		if idx, err := m.table.IndexOfLabel(label); err == nil {
			col, _ := m.table.Column(idx)
			if col.Visible && len(m.table.VisibleColumns()) <= 1 {
				return fmt.Errorf("--hide: cannot hide every column")
			}
		}
		if err := m.table.ToggleColumnByLabel(label, false); err != nil {
			return fmt.Errorf("--hide: %w", err)
		}
	}
	if opts.sortColumn != "" {
		idx, err := m.table.IndexOfLabel(opts.sortColumn)
		if err != nil {
			return fmt.Errorf("--sort: %w", err)
		}
		if _, err := m.table.SortRows(idx, !opts.descending); err != nil {
			return fmt.Errorf("--sort: %w", err)
		}
		if col, _ := m.table.Column(idx); col.Visible {
			m.ui.focusCol = idx
		}
	}
	if opts.rangeLabel != "" {
		if err := m.setDateRangeByLabel(opts.rangeLabel); err != nil {
			return fmt.Errorf("--range: %w", err)
		}
	}
	m.applyFilter()
	return nil
}
