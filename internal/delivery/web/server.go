// Package web serves quiz decks to browsers. Each player plays over a websocket
// that carries presenter output to the page and answers back to the engine.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/repository"
	"github.com/aliskhannn/quiz-engine/internal/service"
)

const (
	timeout         = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	qrSize          = 320
)

//go:embed static/*
var static embed.FS

var templates = template.Must(template.ParseFS(static, "static/*.html"))

// Options configures the web server.
type Options struct {
	Bind      string
	Port      int
	AssetsDir string // item images are served from here under /assets/
	Version   string
}

type Server struct {
	games  GameService
	opts   Options
	logger *zap.Logger
	router *httprouter.Router
	ctx    context.Context // parent of game sessions started over websockets
}

func NewServer(games GameService, opts Options, logger *zap.Logger) *Server {
	s := &Server{
		games:  games,
		opts:   opts,
		logger: logger,
		router: httprouter.New(),
		ctx:    context.Background(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v any) {
		s.logger.Error("panic in handler", zap.String("path", r.URL.Path), zap.Any("panic", v))
		securityHeaders(w)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}

	s.router.GET("/", s.serveIndex())
	s.router.GET("/api/decks", s.serveDecks())
	s.router.GET("/play/:deck", s.servePlay())
	s.router.GET("/play/:deck/ws", s.serveWS())
	s.router.GET("/play/:deck/qr", s.serveQR())
	s.router.GET("/healthz", s.serveHealthCheck())
	s.router.GET("/version", s.serveVersion())

	sub, _ := fs.Sub(static, "static")
	s.router.ServeFiles("/static/*filepath", http.FS(sub))
	if s.opts.AssetsDir != "" {
		s.router.ServeFiles("/assets/*filepath", http.Dir(s.opts.AssetsDir))
	}
}

// Run serves HTTP until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.ctx = ctx

	srv := &http.Server{
		Addr:              net.JoinHostPort(s.opts.Bind, strconv.Itoa(s.opts.Port)),
		Handler:           s.router,
		IdleTimeout:       10 * time.Minute,
		ReadHeaderTimeout: timeout,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info("web server stopped")
	return nil
}

// hooks log the end of web games.
func (s *Server) hooks() service.Hooks {
	return service.Hooks{
		OnComplete: func(sess *service.Session) {
			s.logger.Info("quiz completed",
				zap.String("player_id", sess.PlayerID),
				zap.String("deck", sess.Deck.Name),
			)
		},
		OnGameOver: func(sess *service.Session) {
			s.logger.Info("quiz lost",
				zap.String("player_id", sess.PlayerID),
				zap.String("deck", sess.Deck.Name),
			)
		},
	}
}

func securityHeaders(w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' https: data:")
}

func (s *Server) serveIndex() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		decks, err := s.games.Decks(r.Context())
		if err != nil {
			s.logger.Error("failed to get decks", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(w)

		if err := templates.ExecuteTemplate(w, "index.html", summaries(decks)); err != nil {
			s.logger.Error("failed to render page", zap.Error(err))
		}
	}
}

func (s *Server) serveDecks() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		decks, err := s.games.Decks(r.Context())
		if err != nil {
			s.logger.Error("failed to get decks", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		securityHeaders(w)

		if err := json.NewEncoder(w).Encode(summaries(decks)); err != nil {
			s.logger.Warn("failed to write response", zap.Error(err))
		}
	}
}

func (s *Server) servePlay() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		deck, ok := s.deck(w, r, ps)
		if !ok {
			return
		}

		if _, cookie := playerID(r); cookie != nil {
			http.SetCookie(w, cookie)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(w)

		data := struct {
			Deck     deckSummary
			MaxLives int
		}{
			Deck:     summary(deck),
			MaxLives: entities.MaxLives,
		}
		if err := templates.ExecuteTemplate(w, "play.html", data); err != nil {
			s.logger.Error("failed to render page", zap.Error(err))
		}
	}
}

// serveQR returns a PNG QR code of the deck's play page.
func (s *Server) serveQR() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		deck, ok := s.deck(w, r, ps)
		if !ok {
			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		png, err := qrcode.Encode(scheme+"://"+r.Host+"/play/"+deck.Name, qrcode.Medium, qrSize)
		if err != nil {
			s.logger.Error("qr generation failed", zap.Error(err))
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(w)
		_, _ = w.Write(png)
	}
}

func (s *Server) serveHealthCheck() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		_, _ = w.Write([]byte("Ok\n"))
	}
}

func (s *Server) serveVersion() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		_, _ = w.Write([]byte("quiz v" + s.opts.Version + "\n"))
	}
}

// deck looks up the deck named in the route and writes an error response if it fails.
func (s *Server) deck(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (entities.Deck, bool) {
	deck, err := s.games.Deck(r.Context(), ps.ByName("deck"))
	if errors.Is(err, repository.ErrDeckNotFound) {
		http.NotFound(w, r)
		return entities.Deck{}, false
	}
	if err != nil {
		s.logger.Error("failed to get deck", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return entities.Deck{}, false
	}
	return deck, true
}

func summary(d entities.Deck) deckSummary {
	return deckSummary{Name: d.Name, Title: d.DisplayTitle(), Items: len(d.Items)}
}

func summaries(decks []entities.Deck) []deckSummary {
	out := make([]deckSummary, 0, len(decks))
	for _, d := range decks {
		out = append(out, summary(d))
	}
	return out
}
