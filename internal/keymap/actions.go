// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global
	ActionQuit        Action = "quit"
	ActionSwitchFocus Action = "switch_focus"
	ActionSearch      Action = "search"
	ActionHelp        Action = "help"

	// Playback
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionToggleMute    Action = "toggle_mute"
	ActionToggleShuffle Action = "toggle_shuffle"
	ActionToggleRadio   Action = "toggle_radio"
	ActionCycleRepeat   Action = "cycle_repeat"
	ActionReload        Action = "reload" // retry a widget that failed to load

	// Queue
	ActionClear Action = "clear" // ask, then empty the queue
)
