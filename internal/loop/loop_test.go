package loop

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline_RunsImmediately(t *testing.T) {
	ran := false
	Inline{}.Post(func() { ran = true })
	if !ran {
		t.Error("Inline.Post should run synchronously")
	}
}

func TestFunc_Delegates(t *testing.T) {
	var got []int
	d := Func(func(fn func()) {
		got = append(got, 1)
		fn()
	})
	d.Post(func() { got = append(got, 2) })

	assert.Equal(t, []int{1, 2}, got)
}

func TestLoop_RunsInOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := New()
		go l.Run(ctx)

		var got []int
		for i := range 5 {
			l.Post(func() { got = append(got, i) })
		}
		synctest.Wait()

		assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
		cancel()
		<-l.Done()
	})
}

func TestLoop_DropsAfterStop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := New()
		go l.Run(ctx)
		cancel()
		<-l.Done()

		ran := false
		l.Post(func() { ran = true })
		synctest.Wait()

		assert.False(t, ran)
	})
}

func TestCall_ReturnsResult(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		l := New()
		go l.Run(ctx)

		v, err := Call(ctx, l, func() int { return 42 })

		require.NoError(t, err)
		assert.Equal(t, 42, v)
		cancel()
		<-l.Done()
	})
}

func TestCall_StoppedLoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := New()
		go l.Run(ctx)
		cancel()
		<-l.Done()

		_, err := Call(ctx, l, func() int { return 1 })

		assert.ErrorIs(t, err, ErrStopped)
	})
}
