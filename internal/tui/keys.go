package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Expand     key.Binding
	ShiftEarly key.Binding
	ShiftLate  key.Binding
	BudgetUp   key.Binding
	BudgetDown key.Binding
	StartEarly key.Binding
	StartLate  key.Binding
	Dashboard  key.Binding
	Costs      key.Binding
	Compare    key.Binding
	Fit        key.Binding
	Save       key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Expand:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand costs")),
		ShiftEarly: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "shift 1 month earlier")),
		ShiftLate:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "shift 1 month later")),
		BudgetUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise budget")),
		BudgetDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower budget")),
		StartEarly: key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "start earlier")),
		StartLate:  key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "start later")),
		Dashboard:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Costs:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cost table")),
		Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Fit:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "break-even")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ShiftEarly, k.ShiftLate, k.BudgetUp, k.BudgetDown, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.ShiftEarly, k.ShiftLate, k.StartEarly, k.StartLate},
		{k.BudgetUp, k.BudgetDown, k.Save},
		{k.Dashboard, k.Costs, k.Compare, k.Fit, k.Help, k.Back, k.Quit},
	}
}
