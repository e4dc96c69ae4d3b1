package main

import (
	"context"
	"sync"
	"time"
)

// heartbeat writes HEARTBEAT_BYTE to the receiver while the port is open.
func (pm *PortManager) heartbeat(wg *sync.WaitGroup, ctx context.Context) {
	defer wg.Done()

	pm.logger.Debug().Msg("Heartbeat starting")

	ticker := time.NewTicker(pm.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			pm.logger.Debug().Msg("Heartbeat done")
			return
		case <-ticker.C:
			select {
			case pm.outChan <- HEARTBEAT_BYTE:
			case <-ctx.Done():
			}
		}
	}
}
