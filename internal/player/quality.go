package player

import (
	"strings"

	"github.com/llehouerou/streamus/internal/widget"
)

// Quality is the user's playback quality preference.
type Quality int

const (
	QualityAuto Quality = iota
	QualityHighest
	QualityLowest
)

func (q Quality) String() string {
	switch q {
	case QualityAuto:
		return "auto"
	case QualityHighest:
		return "highest"
	case QualityLowest:
		return "lowest"
	default:
		return "unknown"
	}
}

// ParseQuality parses a config value; unknown names yield QualityAuto.
func ParseQuality(s string) Quality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "highest":
		return QualityHighest
	case "lowest":
		return QualityLowest
	default:
		return QualityAuto
	}
}

var widgetQualities = map[Quality]widget.Quality{
	QualityHighest: widget.QualityHighres,
	QualityAuto:    widget.QualityDefault,
	QualityLowest:  widget.QualitySmall,
}

// widgetQuality maps the preference to the widget's quality. Unmapped
// values fall back to the widget default.
func widgetQuality(q Quality) (widget.Quality, bool) {
	wq, ok := widgetQualities[q]
	if !ok {
		return widget.QualityDefault, false
	}
	return wq, true
}
