package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/mealfinder/internal/lookup"
	"github.com/jask/mealfinder/internal/mealdb"
)

const viewRecipeLabel = "View Recipe"

func (a *App) renderMealTab() string {
	box := inputStyle
	if a.lookup.Phase() == lookup.PhaseInvalid {
		box = invalidBox
	}
	search := lipgloss.JoinHorizontal(lipgloss.Center,
		box.Render(a.query.View()),
		buttonStyle.Render("Search"),
	)

	parts := []string{titleStyle.Render("Find Your Best Meal"), "", search}
	switch a.lookup.Phase() {
	case lookup.PhaseInvalid:
		parts = append(parts, errorStyle.Render(a.lookup.ValidationMsg()))
	case lookup.PhaseLoading:
		parts = append(parts, "", a.spinner.View()+" "+mutedStyle.Render("Searching..."))
	case lookup.PhaseError:
		parts = append(parts, "", errorStyle.Render(a.lookup.ResultMsg()))
	case lookup.PhaseResult:
		parts = append(parts, "", a.renderCard(*a.lookup.Meal()))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(parts, "\n"))
}

func (a *App) renderCard(m mealdb.Meal) string {
	inner := max(30, min(64, a.width-12))
	lines := []string{
		titleStyle.Render(m.Name),
		mutedStyle.Render(m.Region),
	}
	if m.ThumbnailURL != "" {
		lines = append(lines, mutedStyle.Render(ansi.Truncate(m.ThumbnailURL, inner, "…")))
	}
	lines = append(lines, "", ingredientGrid(m.Ingredients, a.cfg.UI.IngredientColumns, inner))
	lines = append(lines, "", buttonStyle.Width(inner-2).Align(lipgloss.Center).Render(viewRecipeLabel+"  (ctrl+o)"))
	return cardStyle.Width(inner + 4).Render(strings.Join(lines, "\n"))
}

// ingredientGrid lays items out row by row, cols per row.
func ingredientGrid(items []string, cols, width int) string {
	if len(items) == 0 {
		return mutedStyle.Render("No ingredients listed")
	}
	if cols < 1 {
		cols = 1
	}
	cellW := max(8, width/cols)
	cell := lipgloss.NewStyle().Width(cellW)
	rows := make([]string, 0, (len(items)+cols-1)/cols)
	for i := 0; i < len(items); i += cols {
		end := min(len(items), i+cols)
		cells := make([]string, 0, cols)
		for _, it := range items[i:end] {
			cells = append(cells, cell.Render("• "+ansi.Truncate(it, cellW-3, "…")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderRecipe() string {
	m := a.lookup.Meal()
	if m == nil {
		return ""
	}
	title := titleStyle.Render(m.Name)
	hint := mutedStyle.Render("esc close")
	gap := max(1, a.recipe.Width-ansi.StringWidth(title)-ansi.StringWidth(hint))
	return strings.Join([]string{
		title + strings.Repeat(" ", gap) + hint,
		"",
		a.recipe.View(),
	}, "\n")
}
