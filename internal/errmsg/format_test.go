//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{"nil error returns empty string", OpStreamLoad, nil, ""},
		{"stream operation", OpStreamLoad, errors.New("database is locked"), "Failed to load stream: database is locked"},
		{"related tracks", OpRelatedTracks, errors.New("quota exceeded"), "Failed to fetch related tracks: quota exceeded"},
		{"search", OpSearch, errors.New("timeout"), "Failed to search: timeout"},
		{"desktop integration", OpNotify, errors.New("no session bus"), "Failed to show notifications: no session bus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{"nil error returns empty string", OpVideoPlay, "abc", nil, ""},
		{"empty context falls back to Format", OpVideoPlay, "", errors.New("x"), "Failed to play video: x"},
		{"with context", OpVideoPlay, "Song", errors.New("not embeddable"), "Failed to play video 'Song': not embeddable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", result, tt.expected)
			}
		})
	}
}
