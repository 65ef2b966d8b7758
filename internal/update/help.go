package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/taskmaestro/maestro/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	out := make([]KeyBinding, 0, len(Tabs)+3)
	for i, v := range Tabs {
		out = append(out, KeyBinding{Key: fmt.Sprint(i + 1), Action: "switch to " + string(v)})
	}
	return append(out,
		KeyBinding{Key: "/", Action: "open command palette"},
		KeyBinding{Key: m.Keys.Help, Action: "toggle help panel"},
		KeyBinding{Key: m.Keys.Quit, Action: "quit app"},
	)
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "f", Action: "cycle filter"},
			{Key: "s", Action: "advance status"},
			{Key: "c", Action: "complete task"},
			{Key: "b", Action: "mark blocked"},
			{Key: "X", Action: "delete task"},
		}
	case ViewProjects:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "r", Action: "recompute selected progress"},
			{Key: "R", Action: "recompute all progress"},
			{Key: "X", Action: "delete project"},
		}
	case ViewTeam:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "X", Action: "delete member"},
		}
	case ViewAnalytics:
		return []KeyBinding{
			{Key: "+/-", Action: "widen/narrow window"},
			{Key: "0", Action: "reset window"},
			{Key: "u", Action: "recompute today"},
		}
	case ViewTips:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "mark tip read"},
			{Key: "c", Action: "cycle category"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
