package notify

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowPlaying_ShowsAndExpires(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		p := NewNowPlaying(m, 4*time.Second, zerolog.Nop())

		p.ShowNowPlaying("Song", "https://i.ytimg.com/vi/a/default.jpg")

		sent := m.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "Now playing", sent[0].Title)
		assert.Equal(t, "Song", sent[0].Body)
		assert.Equal(t, "https://i.ytimg.com/vi/a/default.jpg", sent[0].Icon)
		assert.Equal(t, int32(4000), sent[0].Timeout)
		assert.Equal(t, UrgencyLow, sent[0].Urgency)

		time.Sleep(3 * time.Second)
		synctest.Wait()
		assert.Empty(t, m.Closed())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, []uint32{1}, m.Closed())
	})
}

func TestNowPlaying_NewTrackReplacesAndRestartsTimer(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		p := NewNowPlaying(m, 4*time.Second, zerolog.Nop())

		p.ShowNowPlaying("First", "")
		time.Sleep(3 * time.Second)
		p.ShowNowPlaying("Second", "")

		sent := m.Sent()
		require.Len(t, sent, 2)
		assert.Equal(t, uint32(1), sent[1].ReplacesID)

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Empty(t, m.Closed(), "first timer was cleared")

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, []uint32{1}, m.Closed())
	})
}

func TestNowPlaying_AfterExpiryStartsFresh(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		p := NewNowPlaying(m, time.Second, zerolog.Nop())

		p.ShowNowPlaying("First", "")
		time.Sleep(2 * time.Second)
		synctest.Wait()
		p.ShowNowPlaying("Second", "")

		sent := m.Sent()
		require.Len(t, sent, 2)
		assert.Zero(t, sent[1].ReplacesID)
	})
}

func TestNowPlaying_Dismiss(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := NewMock()
		p := NewNowPlaying(m, time.Second, zerolog.Nop())

		p.ShowNowPlaying("Song", "")
		p.Dismiss()
		assert.Equal(t, []uint32{1}, m.Closed())

		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.Equal(t, []uint32{1}, m.Closed(), "timer stopped on dismiss")
	})
}

func TestNowPlaying_NotifyErrorIsLogged(t *testing.T) {
	m := NewMock()
	m.SetError(errors.New("no server"))
	p := NewNowPlaying(m, 0, zerolog.Nop())

	assert.NotPanics(t, func() { p.ShowNowPlaying("Song", "") })
	assert.Equal(t, DefaultTimeout, p.timeout)
	p.Dismiss()
	assert.Empty(t, m.Closed())
}
