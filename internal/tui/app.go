package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/jask/mealfinder/internal/config"
	"github.com/jask/mealfinder/internal/lookup"
	"github.com/jask/mealfinder/internal/mealdb"
	"github.com/jask/mealfinder/internal/tui/widgets"
)

type tabID int

const (
	tabMeal tabID = iota
	tabImage
)

var tabTitles = []string{"Meal", "Image Generator"}

// App ties the meal lookup and image generator tabs together.
type App struct {
	ctx      context.Context
	cfg      config.Config
	searcher mealdb.Searcher
	log      *zap.Logger
	keys     keyMap
	help     help.Model

	width  int
	height int
	tab    tabID

	lookup   *lookup.Lookup
	query    textinput.Model
	spinner  spinner.Model
	recipe   viewport.Model
	cancel   context.CancelFunc
	started  map[uint64]time.Time
	imageGen *imageGenerator

	status    string
	statusErr bool
	quitting  bool
}

func New(ctx context.Context, cfg config.Config, searcher mealdb.Searcher, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	q := textinput.New()
	q.Placeholder = "Write a meal word..."
	q.CharLimit = 120
	q.Width = 40
	q.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return &App{
		ctx:      ctx,
		cfg:      cfg,
		searcher: searcher,
		log:      log,
		keys:     defaultKeys(),
		help:     help.New(),
		width:    100,
		height:   32,
		lookup:   lookup.New(),
		query:    q,
		spinner:  sp,
		recipe:   viewport.New(60, 12),
		started:  map[uint64]time.Time{},
		imageGen: newImageGenerator(),
		status:   "Ready",
	}
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Lookup exposes the meal state for callers that render it elsewhere.
func (a *App) Lookup() *lookup.Lookup { return a.lookup }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.resizeRecipe()
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case mealResultMsg:
		return a, a.applyResult(m)
	case spinner.TickMsg:
		if !a.lookup.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}
	return a, a.forwardToInput(msg)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Quit) {
		a.quitting = true
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		return a, tea.Quit
	}

	if a.lookup.RecipeOpen() {
		if key.Matches(m, a.keys.CloseRecipe) {
			a.lookup.CloseRecipe()
			return a, nil
		}
		var cmd tea.Cmd
		a.recipe, cmd = a.recipe.Update(m)
		return a, cmd
	}

	switch {
	case key.Matches(m, a.keys.NextTab):
		a.switchTab(1)
		return a, nil
	case key.Matches(m, a.keys.PrevTab):
		a.switchTab(-1)
		return a, nil
	}

	if a.tab == tabImage {
		return a, a.imageGen.Update(m)
	}

	switch {
	case key.Matches(m, a.keys.Search):
		return a, a.search()
	case key.Matches(m, a.keys.OpenRecipe):
		a.openRecipe()
		return a, nil
	}
	return a, a.forwardToInput(m)
}

func (a *App) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if a.tab == tabImage {
		return a.imageGen.Update(msg)
	}
	a.query, cmd = a.query.Update(msg)
	a.lookup.SetInput(a.query.Value())
	return cmd
}

func (a *App) switchTab(step int) {
	n := len(tabTitles)
	a.tab = tabID((int(a.tab) + step + n) % n)
	if a.tab == tabMeal {
		a.query.Focus()
		a.imageGen.Blur()
	} else {
		a.query.Blur()
		a.imageGen.Focus()
	}
}

// search starts one request for the current input. A request still in flight
// is cancelled; its late result is dropped by sequence anyway.
func (a *App) search() tea.Cmd {
	wasLoading := a.lookup.Loading()
	req, ok := a.lookup.Begin(a.query.Value())
	if !ok {
		a.setStatus(lookup.MsgEmptyQuery, true)
		return nil
	}
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.started[req.Seq] = time.Now()
	a.setStatus(fmt.Sprintf("searching %q...", req.Query), false)

	cmd := searchCmd(ctx, a.searcher, req)
	if wasLoading {
		return cmd
	}
	return tea.Batch(a.spinner.Tick, cmd)
}

func searchCmd(ctx context.Context, s mealdb.Searcher, req lookup.Request) tea.Cmd {
	return func() tea.Msg {
		meals, err := s.Search(ctx, req.Query)
		return mealResultMsg{Seq: req.Seq, Query: req.Query, Meals: meals, Err: err}
	}
}

func (a *App) applyResult(m mealResultMsg) tea.Cmd {
	took := time.Since(a.started[m.Seq])
	delete(a.started, m.Seq)
	if !a.lookup.Resolve(m.Seq, m.Meals, m.Err) {
		a.log.Debug("dropped stale meal result", zap.Uint64("seq", m.Seq), zap.Uint64("latest", a.lookup.Seq()))
		return nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	fields := []zap.Field{zap.Uint64("seq", m.Seq), zap.String("query", m.Query), zap.Duration("took", took)}
	switch {
	case m.Err != nil:
		a.log.Error("meal search failed", append(fields, zap.Error(m.Err))...)
		a.setStatus(lookup.MsgFetchError, true)
	case len(m.Meals) == 0:
		a.log.Info("meal search empty", fields...)
		a.setStatus(lookup.MsgNoMeal, true)
	default:
		a.log.Info("meal search matched", append(fields, zap.Int("matches", len(m.Meals)))...)
		a.setStatus(fmt.Sprintf("found %s", a.lookup.Meal().Name), false)
		a.resizeRecipe()
	}
	return nil
}

func (a *App) openRecipe() {
	a.lookup.OpenRecipe()
	if a.lookup.RecipeOpen() {
		a.resizeRecipe()
		a.recipe.GotoTop()
	}
}

func (a *App) resizeRecipe() {
	w := max(20, min(76, a.width-12))
	h := max(3, a.height-14)
	a.recipe.Width = w
	a.recipe.Height = h
	if meal := a.lookup.Meal(); meal != nil {
		a.recipe.SetContent(lipgloss.NewStyle().Width(w).Render(meal.Instructions))
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	if a.quitting {
		return "Goodbye\n"
	}
	header := a.renderHeader()
	status := a.renderStatus()
	footer := a.renderFooter()
	bodyH := max(0, a.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	var body string
	switch a.tab {
	case tabImage:
		body = a.imageGen.View(a.width)
	default:
		body = a.renderMealTab()
	}
	if a.lookup.RecipeOpen() && bodyH > 0 {
		body = widgets.RenderPopup(body, a.renderRecipe(), a.width, bodyH, popupStyle)
	}
	body = widgets.Canvas(body, a.width, bodyH)
	view := strings.Join([]string{header, status, body, footer}, "\n")
	return appStyle.MaxWidth(max(1, a.width)).Render(view)
}

func (a *App) renderHeader() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, t := range tabTitles {
		label := fmt.Sprintf("%d:%s", i+1, t)
		if tabID(i) == a.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	left := brandStyle.Render("mealfinder")
	right := strings.Join(tabs, " ")
	gap := max(1, a.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	return bar(headerBarStyle, a.width, left+strings.Repeat(" ", gap)+right)
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return bar(statusErrBarStyle, a.width, msg)
	}
	return bar(statusBarStyle, a.width, msg)
}

func (a *App) renderFooter() string {
	return bar(headerBarStyle, a.width, a.help.ShortHelpView(a.bindingsFor()))
}

func bar(style lipgloss.Style, width int, line string) string {
	width = max(1, width)
	line = widgets.PadRight(strings.ReplaceAll(line, "\n", " "), width)
	return style.Width(width).MaxWidth(width).Render(line)
}

type mealResultMsg struct {
	Seq   uint64
	Query string
	Meals []mealdb.Meal
	Err   error
}
