package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jask/mealfinder/internal/config"
	"github.com/jask/mealfinder/internal/logging"
	"github.com/jask/mealfinder/internal/lookup"
	"github.com/jask/mealfinder/internal/mealdb"
	"github.com/jask/mealfinder/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("mealfinder", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)
	query := fs.StringP("query", "q", "", "search once, print the first match and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer logging.Sync(logger)

	client := mealdb.NewClient(cfg.API.BaseURL,
		mealdb.WithTimeout(cfg.API.Timeout),
		mealdb.WithLogger(logger.Named("mealdb")),
	)

	if fs.Changed("query") {
		return searchOnce(ctx, client, *query, cfg.UI.IngredientColumns, stdout, stderr)
	}

	logger.Info("starting tui", zap.String("api", cfg.API.BaseURL))
	p := tea.NewProgram(tui.New(ctx, cfg, client, logger.Named("tui")), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("tui exited", zap.Error(err))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// searchOnce prints the same messages the TUI shows.
func searchOnce(ctx context.Context, s mealdb.Searcher, query string, cols int, stdout, stderr io.Writer) int {
	l := lookup.New()
	err := l.Search(ctx, s, query)
	switch {
	case errors.Is(err, lookup.ErrEmptyQuery):
		fmt.Fprintln(stderr, l.ValidationMsg())
		return 1
	case err != nil:
		fmt.Fprintln(stderr, l.ResultMsg())
		return 1
	}
	printMeal(stdout, *l.Meal(), cols)
	return 0
}

func printMeal(w io.Writer, m mealdb.Meal, cols int) {
	fmt.Fprintln(w, m.Name)
	if m.Region != "" {
		fmt.Fprintln(w, m.Region)
	}
	if m.ThumbnailURL != "" {
		fmt.Fprintln(w, m.ThumbnailURL)
	}
	fmt.Fprintln(w)
	if cols < 1 {
		cols = 1
	}
	for i := 0; i < len(m.Ingredients); i += cols {
		row := m.Ingredients[i:min(len(m.Ingredients), i+cols)]
		cells := make([]string, len(row))
		for j, it := range row {
			cells[j] = fmt.Sprintf("- %-28s", it)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	if m.Instructions != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, m.Instructions)
	}
}
