// server_http.go - HTTP API for decoding, rendering and live playback

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	HTTP_MAX_BODY         = 64 * 1024
	HTTP_SHUTDOWN_TIMEOUT = 10 * time.Second
)

// SoundServer serves the expression catalogue and, when a live board is
// attached, plays on it.
type SoundServer struct {
	router     *chi.Mux
	logger     *slog.Logger
	board      *BoardAudio // nil for a render-only server
	sampleRate int
	synthOpts  []SynthOption
}

type expressionSummary struct {
	Name       string        `json:"name"`
	Descriptor string        `json:"descriptor,omitempty"`
	Metadata   MusicMetadata `json:"metadata"`
	Records    []SoundEffect `json:"records,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewSoundServer(board *BoardAudio, cfg Config, logger *slog.Logger) *SoundServer {
	s := &SoundServer{
		router:     chi.NewRouter(),
		logger:     logger,
		board:      board,
		sampleRate: cfg.SampleRate,
		synthOpts:  cfg.SynthOptions(),
	}
	s.setupRoutes()
	return s
}

func (s *SoundServer) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/expressions", s.handleList)
	r.Get("/expressions/{name}", s.handleExpression)
	r.Post("/decode", s.handleDecode)
	r.Get("/render/{name}", s.handleRender)
	r.Post("/play/{name}", s.handlePlay)
	r.Post("/stop", s.handleStop)
}

// ServeHTTP lets the server be mounted or tested directly.
func (s *SoundServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *SoundServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *SoundServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), HTTP_SHUTDOWN_TIMEOUT)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *SoundServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"live":   s.board != nil,
	})
}

func (s *SoundServer) handleList(w http.ResponseWriter, r *http.Request) {
	names := BuiltinSoundNames()
	out := make([]expressionSummary, 0, len(names))
	for _, name := range names {
		effects, err := DecodeExpression(name)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
			return
		}
		out = append(out, expressionSummary{Name: name, Metadata: metadataFor(name, effects)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *SoundServer) handleExpression(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !IsBuiltinSound(name) {
		writeJSON(w, http.StatusNotFound, errorResponse{"unknown expression " + name})
		return
	}
	descriptor := ReplaceBuiltinSound(name)
	effects, err := ParseSoundEffects(descriptor)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, expressionSummary{
		Name:       name,
		Descriptor: descriptor,
		Metadata:   metadataFor(name, effects),
		Records:    effects,
	})
}

func (s *SoundServer) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, HTTP_MAX_BODY))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{err.Error()})
		return
	}
	text, err := parseExpressionText(body)
	if err == nil {
		var effects []SoundEffect
		if effects, err = ParseSoundEffects(text); err == nil {
			writeJSON(w, http.StatusOK, expressionSummary{
				Descriptor: EncodeSoundEffects(effects),
				Metadata:   metadataFor("", effects),
				Records:    effects,
			})
			return
		}
	}
	if errors.Is(err, ErrInvalidDescriptor) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
}

func (s *SoundServer) handleRender(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !IsBuiltinSound(name) {
		writeJSON(w, http.StatusNotFound, errorResponse{"unknown expression " + name})
		return
	}
	effects, err := DecodeExpression(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}
	samples := RenderExpression(effects, s.sampleRate, s.synthOpts...)
	data, err := EncodeWAV(samples, s.sampleRate)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.wav"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *SoundServer) handlePlay(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{"no live audio device"})
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.board.PlaySoundExpression(name); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"playing": name})
}

func (s *SoundServer) handleStop(w http.ResponseWriter, r *http.Request) {
	if s.board == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{"no live audio device"})
		return
	}
	s.board.StopExpression()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
