package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

type portOpener func(portName string, mode *serial.Mode) (serial.Port, error)

type PortManager struct {
	logger    *zerolog.Logger
	cfg       Config
	inChan    chan<- byte
	outChan   chan byte
	waitGroup *sync.WaitGroup
	openPort  portOpener
}

func NewPortManager(logger *zerolog.Logger, cfg Config, inChan chan<- byte, outChan chan byte, waitGroup *sync.WaitGroup) *PortManager {
	return &PortManager{
		logger:    ptr(logger.With().Str(LogKey.Module, "PortManager").Logger()),
		cfg:       cfg,
		waitGroup: waitGroup,
		inChan:    inChan,
		outChan:   outChan,
		openPort:  serial.Open,
	}
}

func (pm *PortManager) Start(ctx context.Context) {
	pm.waitGroup.Add(1)
	go pm.loop(ctx)
}

func (pm *PortManager) loop(ctx context.Context) {
	var errorShown = false
	defer pm.waitGroup.Done()

	for {
		port, err := pm.open()
		if err != nil {
			if !errorShown {
				pm.logger.Error().Err(err).Msg("Failed opening port")
				errorShown = true
			}

			select {
			case <-ctx.Done():
				pm.logger.Info().Msg("Stopping")
				return
			case <-time.After(pm.cfg.ReconnectDelay):
			}
			continue
		}
		if errorShown {
			pm.logger.Info().Msg("Opened port")
			errorShown = false
		}

		// the receiver resets when the port opens
		select {
		case <-ctx.Done():
			pm.closePort(port)
			return
		case <-time.After(pm.cfg.SettleDelay):
		}

		if done := pm.serve(ctx, port); done {
			return
		}
	}
}

// serve runs the port jobs until the port fails or ctx is done. It reports
// whether the manager should stop.
func (pm *PortManager) serve(ctx context.Context, port serial.Port) bool {
	portContext, portCancel := context.WithCancel(ctx)
	defer portCancel()

	waitChan := make(chan struct{})
	var portWaitGroup sync.WaitGroup
	portWaitGroup.Add(3)
	go pm.writer(port, &portWaitGroup, portContext, portCancel)
	go pm.reader(port, &portWaitGroup, portContext, portCancel)
	go pm.heartbeat(&portWaitGroup, portContext)
	go func() {
		portWaitGroup.Wait()
		close(waitChan)
	}()

	select {
	case <-ctx.Done():
		pm.logger.Info().Msg("Canceling port jobs")
		portCancel()
		pm.closePort(port)
		<-waitChan
		pm.logger.Info().Msg("Done")
		return true
	case <-portContext.Done():
		pm.closePort(port)
		<-waitChan
		if ctx.Err() != nil {
			return true
		}
		pm.logger.Info().Msg("Reopening port")
		return false
	}
}

func (pm *PortManager) writer(port serial.Port, wg *sync.WaitGroup, ctx context.Context, portCancel context.CancelFunc) {
	buff := make([]byte, 1)
	defer wg.Done()
	defer portCancel()

	for {
		select {
		case toWrite := <-pm.outChan:
			buff[0] = toWrite
			_, err := port.Write(buff)
			if err != nil {
				pm.logger.Error().Err(err).Msg("Failed writing to port")
				return
			}
			pm.logger.Trace().Uint8(LogKey.Code, toWrite).Msg("Wrote byte")
		case <-ctx.Done():
			pm.logger.Debug().Msg("Writer done")
			return
		}
	}
}

func (pm *PortManager) reader(port serial.Port, wg *sync.WaitGroup, ctx context.Context, portCancel context.CancelFunc) {
	buff := make([]byte, 100)
	defer wg.Done()
	defer portCancel()

	for {
		n, err := port.Read(buff)
		if err != nil {
			if ctx.Err() == nil {
				pm.logger.Warn().Err(err).Msg("Read failed")
			}
			return
		}
		if n == 0 {
			pm.logger.Info().Msg("0 bytes to read, done reading")
			return
		}
		for i := 0; i < n; i++ {
			pm.logger.Trace().Uint8(LogKey.Code, buff[i]).Msg("Received byte")
			select {
			case pm.inChan <- buff[i]:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (pm *PortManager) open() (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: pm.cfg.BaudRate,
	}
	return pm.openPort(pm.cfg.PortName, mode)
}

func (pm *PortManager) closePort(port serial.Port) {
	if err := port.Close(); err != nil {
		pm.logger.Error().Err(err).Msg("Error closing port")
	}
}
