// Package keymap defines keybindings for the TUI.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back closes the detail view, leaves the input, or returns to results.
	Back key.Binding

	// Search submits the query in the input.
	Search key.Binding

	// Focus moves focus to the query input.
	Focus key.Binding

	// Command opens the command line.
	Command key.Binding

	// Up moves the selection to the previous result.
	Up key.Binding

	// Down moves the selection to the next result.
	Down key.Binding

	// PrevPage and NextPage page through results, or step through
	// neighbouring frames in the detail view.
	PrevPage key.Binding
	NextPage key.Binding

	// Open shows the detail view for the selected result.
	Open key.Binding

	// Exclude adds the selected frame to the skip list.
	Exclude key.Binding

	// Scroll searches the shot around the selected frame.
	Scroll key.Binding

	// Rerank reorders the current results by colour.
	Rerank key.Binding

	// History opens the history picker.
	History key.Binding

	// Previous replays the most recent search.
	Previous key.Binding

	// Model cycles the retrieval model.
	Model key.Binding

	// Temporal toggles the temporal variant of the model.
	Temporal key.Binding

	// QueryType toggles between text and image queries.
	QueryType key.Binding

	// Commit fills a submission from the frame shown in the detail view.
	Commit key.Binding

	// Send submits the pending submission to the evaluation server.
	Send key.Binding

	// Clear empties the history in the history picker.
	Clear key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "query"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Exclude: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exclude"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "scroll"),
		),
		Rerank: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rerank"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous"),
		),
		Model: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "model"),
		),
		Temporal: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "temporal"),
		),
		QueryType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "text/image"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "fill submission"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Command, k.Help, k.Quit}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Open, k.Exclude, k.History, k.Help}
}

// DetailHelp returns keybindings for the detail view.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Commit, k.Scroll, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Command, k.Search, k.Back},
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open},
		{k.Exclude, k.Scroll, k.Rerank, k.History, k.Previous},
		{k.Model, k.Temporal, k.QueryType},
		{k.Commit, k.Send, k.Clear},
		{k.Help, k.Quit},
	}
}

// Hints renders bindings as "key: desc" pairs joined by " | ".
func Hints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, " | ")
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
