package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/KDDaniels/AutoShadeController/remote"
	"github.com/rs/zerolog"
)

var (
	ButtonInfo   = regexp.MustCompile(`^/buttons/([^/]+)$`)
	PressControl = regexp.MustCompile(`^/press/([^/]+)$`)
)

type RestAPI struct {
	logger     *zerolog.Logger
	addr       string
	processor  *ButtonProcessor
	waitGroup  *sync.WaitGroup
	httpServer *http.Server
	errChan    chan error
}

type buttonEntry struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
	Code  byte   `json:"code"`
	Digit *int   `json:"digit,omitempty"`
}

type countsResponse struct {
	Counts  map[string]int `json:"counts"`
	Unknown int            `json:"unknown"`
}

func NewRestApi(logger *zerolog.Logger, addr string, processor *ButtonProcessor, waitGroup *sync.WaitGroup) *RestAPI {
	return &RestAPI{
		logger:    ptr(logger.With().Str(LogKey.Module, "RestAPI").Logger()),
		addr:      addr,
		processor: processor,
		waitGroup: waitGroup,
		errChan:   make(chan error, 1),
	}
}

// Err delivers the error that stopped the HTTP server before shutdown was requested.
func (api *RestAPI) Err() <-chan error {
	return api.errChan
}

func (api *RestAPI) Start(ctx context.Context) {
	api.httpServer = &http.Server{
		Addr:         api.addr,
		Handler:      api.handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	api.waitGroup.Add(2)
	go api.listen()
	go api.waitForCancel(ctx)
}

func (api *RestAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", &homeHandler{
		logger: api.logger,
	})
	mux.Handle("/buttons", &buttonsHandler{
		logger: api.logger,
	})
	mux.Handle("/buttons/", &buttonsHandler{
		logger: api.logger,
	})
	mux.Handle("/presses/", &pressesHandler{
		logger:    api.logger,
		processor: api.processor,
	})
	mux.Handle("/press/", &pressHandler{
		logger:    api.logger,
		processor: api.processor,
	})
	return mux
}

func (api *RestAPI) listen() {
	defer api.waitGroup.Done()

	api.logger.Info().Str("addr", api.addr).Msg("Listening")

	err := api.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		api.logger.Error().Err(err).Msg("HTTP server failed")
		api.errChan <- fmt.Errorf("http server: %w", err)
		return
	}
	api.logger.Info().Msg("Done")
}

func (api *RestAPI) waitForCancel(ctx context.Context) {
	defer api.waitGroup.Done()
	<-ctx.Done()
	api.logger.Info().Msg("Stopping")
	api.stop()
}

func (api *RestAPI) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	api.logger.Info().Msg("Shutting down")
	if err := api.httpServer.Shutdown(ctx); err != nil {
		api.logger.Error().Err(err).Msg("HTTP server shutdown error")
	}
	api.logger.Info().Msg("Finished shutting down")
}

func writeJSON(logger *zerolog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Write failed")
	}
}

func entryFor(b remote.Button) buttonEntry {
	entry := buttonEntry{
		Name:  b.String(),
		Alias: b.Alias(),
		Code:  b.Code(),
	}
	if d, ok := remote.Digit(b); ok {
		entry.Digit = ptr(d)
	}
	return entry
}

type buttonsHandler struct {
	logger *zerolog.Logger
}

func (bh *buttonsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == "/buttons" || r.URL.Path == "/buttons/" {
		all := remote.All()
		entries := make([]buttonEntry, 0, len(all))
		for _, b := range all {
			entries = append(entries, entryFor(b))
		}
		writeJSON(bh.logger, w, http.StatusOK, entries)
		return
	}

	matches := ButtonInfo.FindStringSubmatch(r.URL.Path)
	if len(matches) == 0 {
		http.NotFound(w, r)
		return
	}
	button, err := remote.Parse(matches[1])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(bh.logger, w, http.StatusOK, entryFor(button))
}

type pressesHandler struct {
	logger    *zerolog.Logger
	processor *ButtonProcessor
}

func (ph *pressesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/presses/last":
		press, ok := ph.processor.Last()
		if !ok {
			http.Error(w, "no presses yet", http.StatusNotFound)
			return
		}
		writeJSON(ph.logger, w, http.StatusOK, press)
	case "/presses/counts":
		resp := countsResponse{
			Counts:  make(map[string]int),
			Unknown: ph.processor.Unknown(),
		}
		for b, n := range ph.processor.Counts() {
			resp.Counts[b.String()] = n
		}
		writeJSON(ph.logger, w, http.StatusOK, resp)
	default:
		http.NotFound(w, r)
	}
}

type pressHandler struct {
	logger    *zerolog.Logger
	processor *ButtonProcessor
}

func (ph *pressHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	matches := PressControl.FindStringSubmatch(r.URL.Path)
	if len(matches) == 0 {
		http.NotFound(w, r)
		return
	}
	button, err := remote.Parse(matches[1])
	if err != nil {
		ph.logger.Warn().Err(err).Msg("Press rejected")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	ph.processor.Inject(button)
	writeJSON(ph.logger, w, http.StatusOK, entryFor(button))
}

type homeHandler struct {
	logger *zerolog.Logger
}

func (hh *homeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	_, err := w.Write([]byte("AutoShade IR Remote Host"))
	if err != nil {
		hh.logger.Error().Err(err).Msg("Write failed")
		return
	}
}
