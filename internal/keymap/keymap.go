package keymap

import "strings"

// Binding ties keys to an action. Context groups bindings for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "queue"
}

// All contains the application-level bindings. List navigation keys are
// handled by the panels themselves and are listed in Panel.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch panel", "global"},
	{ActionSearch, []string{"/"}, "Search", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous/restart", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},
	{ActionToggleShuffle, []string{"s"}, "Shuffle", "playback"},
	{ActionToggleRadio, []string{"r"}, "Radio", "playback"},
	{ActionCycleRepeat, []string{"R"}, "Repeat", "playback"},
	{ActionReload, []string{"ctrl+r"}, "Reload player", "playback"},

	{ActionClear, []string{"c"}, "Clear queue", "queue"},
}

// Panel documents the keys handled inside list panels.
var Panel = []Binding{
	{"", []string{"j", "k"}, "Move", "queue"},
	{"", []string{"enter"}, "Play", "queue"},
	{"", []string{"d"}, "Remove", "queue"},
	{"", []string{"J", "K"}, "Reorder", "queue"},
}

// ByContext returns the bindings in bindings with the given context.
func ByContext(bindings []Binding, context string) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help renders bindings as "key desc · key desc".
func Help(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, displayKey(b.Keys[0])+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
