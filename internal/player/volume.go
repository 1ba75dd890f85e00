package player

import "github.com/llehouerou/streamus/internal/state"

// VolumeStep is the change applied by a single volume up/down command.
const VolumeStep = 5

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SetVolume clamps volume into range, unmutes, and persists it.
func (c *Controller) SetVolume(volume int) {
	c.volume = clamp(volume, c.minVolume, c.maxVolume)
	c.muted = false
	c.save()

	if c.ready {
		_ = c.w.SetVolume(c.volume)
		_ = c.w.SetMuted(false)
	} else {
		c.w.Preload()
	}
	c.emitChanged()
}

// AdjustVolume changes the volume by delta.
func (c *Controller) AdjustVolume(delta int) {
	c.SetVolume(c.volume + delta)
}

// SetMuted mutes or unmutes without touching the volume.
func (c *Controller) SetMuted(muted bool) {
	if c.muted == muted {
		return
	}
	c.muted = muted
	c.save()

	if c.ready {
		_ = c.w.SetMuted(muted)
	} else {
		c.w.Preload()
	}
	c.emitChanged()
}

func (c *Controller) ToggleMuted() {
	c.SetMuted(!c.muted)
}

func (c *Controller) save() {
	if c.store == nil {
		return
	}
	c.store.Save(state.KeyPlayer, persisted{Volume: c.volume, Muted: c.muted})
}

// restore loads the saved volume and mute flag, if any.
func (c *Controller) restore() {
	if c.store == nil {
		return
	}
	var p persisted
	ok, err := c.store.Load(state.KeyPlayer, &p)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load player state")
		return
	}
	if !ok {
		return
	}
	c.volume = clamp(p.Volume, c.minVolume, c.maxVolume)
	c.muted = p.Muted
}
