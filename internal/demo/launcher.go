package demo

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/tea-layershell/internal/runtime"
	"github.com/atomicstack/tea-layershell/internal/ui"
	"github.com/atomicstack/tea-layershell/internal/widget"
)

type entry struct {
	name string
	msg  tea.Msg
}

var entries = []entry{
	{"increment", incrementMsg{}},
	{"decrement", decrementMsg{}},
	{"reset counter", resetMsg{}},
	{"side panel", panelMsg{}},
	{"flip panel", flipMsg{}},
	{"toggle theme", themeMsg{}},
	{"quit", quitMsg{}},
}

// maxListed is how many matches the launcher shows under its input.
const maxListed = 6

// matches ranks the launcher entries against query, closest first. An
// empty query matches everything in declaration order.
func matches(query string) []entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]entry(nil), entries...)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	sort.Stable(ranks)
	out := make([]entry, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, entries[rank.OriginalIndex])
	}
	return out
}

func (a *App) launcherView(id runtime.WindowID) ui.Element {
	children := []ui.Element{
		widget.TextInput{
			ID:          queryInputID,
			Placeholder: "run a command",
			Value:       a.query,
			Width:       int(launcherSize.Width) - 2,
			OnInput:     func(s string) tea.Msg { return queryMsg(s) },
			OnSubmit:    submitMsg{window: id},
		},
	}
	found := matches(a.query)
	if len(found) == 0 {
		children = append(children, widget.Text{Content: "  no match"})
	}
	for i, e := range found {
		if i == maxListed {
			break
		}
		prefix := "  "
		if i == 0 {
			prefix = "> "
		}
		children = append(children, widget.Text{Content: prefix + e.name})
	}
	return widget.Column{Padding: 1, Children: children}
}
