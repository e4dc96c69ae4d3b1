package main

import (
	"context"
	"sync"
	"time"

	"github.com/KDDaniels/AutoShadeController/remote"
	"github.com/rs/zerolog"
)

type Press struct {
	Button   remote.Button `json:"button"`
	Code     byte          `json:"code"`
	At       time.Time     `json:"at"`
	Injected bool          `json:"injected"`
}

type ButtonProcessor struct {
	logger    *zerolog.Logger
	inChan    <-chan byte
	waitGroup *sync.WaitGroup
	now       func() time.Time

	mu      sync.Mutex
	last    *Press
	counts  map[remote.Button]int
	unknown int
}

func NewButtonProcessor(logger *zerolog.Logger, inChan <-chan byte, waitGroup *sync.WaitGroup) *ButtonProcessor {
	return &ButtonProcessor{
		logger:    ptr(logger.With().Str(LogKey.Module, "ButtonProcessor").Logger()),
		inChan:    inChan,
		waitGroup: waitGroup,
		now:       time.Now,
		counts:    make(map[remote.Button]int),
	}
}

func (bp *ButtonProcessor) Start(ctx context.Context) {
	bp.waitGroup.Add(1)
	go bp.loop(ctx)
}

func (bp *ButtonProcessor) loop(ctx context.Context) {
	defer bp.waitGroup.Done()
	bp.logger.Info().Msg("Starting")

	for {
		select {
		case <-ctx.Done():
			bp.logger.Info().Msg("Done")
			return
		case code, more := <-bp.inChan:
			if !more {
				bp.logger.Info().Msg("No more input")
				return
			}
			bp.Handle(code)
		}
	}
}

// Handle resolves one scan code from the receiver. Codes with no button are
// counted and otherwise dropped.
func (bp *ButtonProcessor) Handle(code byte) (remote.Button, bool) {
	return bp.handle(code, false)
}

// Inject records a press that did not come from the receiver.
func (bp *ButtonProcessor) Inject(button remote.Button) {
	bp.handle(button.Code(), true)
}

func (bp *ButtonProcessor) handle(code byte, injected bool) (remote.Button, bool) {
	button, ok := remote.Lookup(code)

	bp.mu.Lock()
	defer bp.mu.Unlock()

	if !ok {
		bp.unknown++
		bp.logger.Debug().Uint8(LogKey.Code, code).Msg("Unknown code")
		return button, false
	}
	bp.counts[button]++
	bp.last = &Press{
		Button:   button,
		Code:     code,
		At:       bp.now(),
		Injected: injected,
	}
	bp.logger.Info().
		Str(LogKey.Button, button.String()).
		Uint8(LogKey.Code, code).
		Bool("injected", injected).
		Msg("Button pressed")
	return button, true
}

func (bp *ButtonProcessor) Last() (Press, bool) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.last == nil {
		return Press{}, false
	}
	return *bp.last, true
}

func (bp *ButtonProcessor) Counts() map[remote.Button]int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	out := make(map[remote.Button]int, len(bp.counts))
	for b, n := range bp.counts {
		out[b] = n
	}
	return out
}

func (bp *ButtonProcessor) Unknown() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.unknown
}
