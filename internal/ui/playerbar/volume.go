package playerbar

import (
	"fmt"

	"github.com/llehouerou/streamus/internal/icons"
)

// RenderVolume renders the volume as "vol  80%", or with the mute icon.
func RenderVolume(volume int, muted bool) string {
	icon := icons.Volume()
	if muted {
		icon = icons.VolumeMute()
	}
	return progressTimeStyle().Render(fmt.Sprintf("%s %3d%%", icon, volume))
}
