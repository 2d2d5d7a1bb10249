package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Search      key.Binding
	OpenRecipe  key.Binding
	CloseRecipe key.Binding
	Scroll      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Search:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		OpenRecipe:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "view recipe")),
		CloseRecipe: key.NewBinding(key.WithKeys("esc", "ctrl+o"), key.WithHelp("esc", "close")),
		Scroll:      key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
	}
}

// bindingsFor lists the bindings shown in the footer for the current state.
func (a *App) bindingsFor() []key.Binding {
	k := a.keys
	if a.lookup.RecipeOpen() {
		return []key.Binding{k.Scroll, k.CloseRecipe, k.Quit}
	}
	if a.tab == tabImage {
		return []key.Binding{k.NextTab, k.PrevTab, k.Quit}
	}
	out := []key.Binding{k.Search}
	if a.lookup.Meal() != nil {
		out = append(out, k.OpenRecipe)
	}
	return append(out, k.NextTab, k.Quit)
}
