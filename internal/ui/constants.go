// Package ui provides shared UI constants and utilities.
package ui

const (
	// ScrollMargin is the number of rows kept visible above and below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the vertical overhead of a bordered panel with a header.
	PanelOverhead = BorderHeight + HeaderHeight
)
