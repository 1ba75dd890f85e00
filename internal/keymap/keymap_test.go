package keymap

import (
	"slices"
	"testing"
)

func TestNoKeyBoundTwice(t *testing.T) {
	seen := make(map[string]Action)
	for _, b := range All {
		for _, k := range b.Keys {
			if prev, dup := seen[k]; dup {
				t.Errorf("key %q bound to %s and %s", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(All)

	tests := []struct {
		key  string
		want Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"R", ActionCycleRepeat},
		{"r", ActionToggleRadio},
		{"ctrl+r", ActionReload},
		{"unbound", ""},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionNextTrack, []string{"n"}, "Next", "playback"},
		{ActionNextTrack, []string{"n", "pgdown"}, "Next", "queue"},
	})

	if got := r.KeysFor(ActionNextTrack); !slices.Equal(got, []string{"n", "pgdown"}) {
		t.Errorf("KeysFor(next) = %v, want [n pgdown]", got)
	}
	if got := r.KeysFor(ActionQuit); len(got) != 0 {
		t.Errorf("KeysFor(quit) = %v, want none", got)
	}
}

func TestByContext(t *testing.T) {
	playback := ByContext(All, "playback")

	if len(playback) == 0 {
		t.Fatal("no playback bindings")
	}
	for _, b := range playback {
		if b.Context != "playback" {
			t.Errorf("%s has context %q", b.Action, b.Context)
		}
	}
	if got := ByContext(All, "missing"); len(got) != 0 {
		t.Errorf("ByContext(missing) = %v, want none", got)
	}
}

func TestHelp(t *testing.T) {
	got := Help([]Binding{
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionSearch, []string{"/"}, "Search", "global"},
	})

	if want := "space Play/pause · / Search"; got != want {
		t.Errorf("Help() = %q, want %q", got, want)
	}
}
