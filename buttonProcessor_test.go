package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KDDaniels/AutoShadeController/remote"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(in <-chan byte) *ButtonProcessor {
	bp := NewButtonProcessor(ptr(zerolog.Nop()), in, &sync.WaitGroup{})
	bp.now = func() time.Time { return time.Date(2025, 1, 9, 3, 17, 41, 0, time.UTC) }
	return bp
}

func TestHandleKnownCode(t *testing.T) {
	bp := newTestProcessor(nil)

	button, ok := bp.Handle(0x45)
	require.True(t, ok)
	assert.Equal(t, remote.POWER, button)

	press, ok := bp.Last()
	require.True(t, ok)
	assert.Equal(t, Press{
		Button: remote.POWER,
		Code:   0x45,
		At:     time.Date(2025, 1, 9, 3, 17, 41, 0, time.UTC),
	}, press)
	assert.Equal(t, map[remote.Button]int{remote.POWER: 1}, bp.Counts())
}

func TestHandleUnknownCode(t *testing.T) {
	bp := newTestProcessor(nil)

	_, ok := bp.Handle(HEARTBEAT_BYTE)
	assert.False(t, ok)
	_, ok = bp.Last()
	assert.False(t, ok)
	assert.Equal(t, 1, bp.Unknown())
	assert.Empty(t, bp.Counts())
}

func TestInject(t *testing.T) {
	bp := newTestProcessor(nil)

	bp.Handle(0x5E)
	bp.Inject(remote.SEEK_LEFT)

	press, ok := bp.Last()
	require.True(t, ok)
	assert.Equal(t, remote.SEEK_LEFT, press.Button)
	assert.True(t, press.Injected)
	assert.Equal(t, map[remote.Button]int{remote.THREE: 1, remote.SEEK_LEFT: 1}, bp.Counts())
}

func TestCountsIsCopy(t *testing.T) {
	bp := newTestProcessor(nil)
	bp.Handle(0x46)

	counts := bp.Counts()
	counts[remote.VOLUP] = 100
	assert.Equal(t, 1, bp.Counts()[remote.VOLUP])
}

func TestProcessorLoop(t *testing.T) {
	in := make(chan byte, 10)
	wg := &sync.WaitGroup{}
	bp := NewButtonProcessor(ptr(zerolog.Nop()), in, wg)

	ctx, cancel := context.WithCancel(context.Background())
	bp.Start(ctx)

	for _, code := range []byte{0x45, 0xFF, 0x16, 0x16} {
		in <- code
	}
	assert.Eventually(t, func() bool {
		return bp.Counts()[remote.ZERO] == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	wg.Wait()

	assert.Equal(t, 1, bp.Counts()[remote.POWER])
	assert.Equal(t, 1, bp.Unknown())
	press, ok := bp.Last()
	require.True(t, ok)
	assert.Equal(t, remote.ZERO, press.Button)
	assert.False(t, press.Injected)
}
