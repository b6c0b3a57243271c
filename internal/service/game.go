package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/engine"
	"github.com/aliskhannn/quiz-engine/internal/timer"
)

var ErrSessionNotFound = errors.New("session not found")

const reapSchedule = "@every 1m"

// GameConfig holds the settings shared by every session.
type GameConfig struct {
	LivesMode      entities.LivesMode
	Delays         *engine.Delays // nil means engine.DefaultDelays
	SessionTimeout time.Duration  // sessions idle longer than this are closed, 0 disables reaping
}

// Hooks are notified when a session reaches a terminal state and when it is
// closed. They run on the goroutine that resolved the transition.
type Hooks struct {
	OnComplete func(s *Session)
	OnGameOver func(s *Session)
	OnEnd      func(s *Session) // session replaced, ended, reaped or shut down
}

// Session is a quiz session of a single player.
type Session struct {
	PlayerID  string
	Deck      entities.Deck
	Engine    *engine.Engine
	StartedAt time.Time

	lastActive time.Time // guarded by GameService.mu
	onEnd      func(s *Session)
}

// close stops the engine and notifies the owner of the session.
func (s *Session) close() {
	s.Engine.Close()
	if s.onEnd != nil {
		s.onEnd(s)
	}
}

// GameService keeps one quiz session per player.
type GameService struct {
	itemRepo  ItemRepository
	livesRepo LivesRepository
	scheduler timer.Scheduler
	cfg       GameConfig
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewGameService creates a new game service.
func NewGameService(
	itemRepo ItemRepository,
	livesRepo LivesRepository,
	scheduler timer.Scheduler,
	cfg GameConfig,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		itemRepo:  itemRepo,
		livesRepo: livesRepo,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Decks returns every playable deck.
func (s *GameService) Decks(ctx context.Context) ([]entities.Deck, error) {
	return s.itemRepo.GetAll(ctx)
}

// Deck returns the deck with the given name.
func (s *GameService) Deck(ctx context.Context, name string) (entities.Deck, error) {
	return s.itemRepo.GetDeck(ctx, name)
}

// Start begins a new session of deck for the player, replacing any previous one.
func (s *GameService) Start(
	ctx context.Context,
	playerID string,
	deckName string,
	presenter engine.Presenter,
	hooks Hooks,
) (*Session, error) {
	deck, err := s.itemRepo.GetDeck(ctx, deckName)
	if err != nil {
		return nil, err
	}

	now := s.scheduler.Now()
	sess := &Session{
		PlayerID:   playerID,
		Deck:       deck,
		StartedAt:  now,
		lastActive: now,
		onEnd:      hooks.OnEnd,
	}

	eng, err := engine.New(engine.Config{
		Items:      deck.Items,
		LivesMode:  s.cfg.LivesMode,
		Delays:     s.cfg.Delays,
		OnComplete: s.notify(sess, hooks.OnComplete),
		OnGameOver: s.notify(sess, hooks.OnGameOver),
	}, presenter, playerLives{repo: s.livesRepo, playerID: playerID}, s.scheduler, s.logger.With(
		zap.String("player_id", playerID),
		zap.String("deck", deck.Name),
	))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	sess.Engine = eng

	s.mu.Lock()
	prev := s.sessions[playerID]
	s.sessions[playerID] = sess
	s.mu.Unlock()

	if prev != nil {
		prev.close()
	}

	eng.Init(ctx)

	s.logger.Info("session started",
		zap.String("player_id", playerID),
		zap.String("deck", deck.Name),
	)

	return sess, nil
}

// Answer submits an option for the player's current question.
func (s *GameService) Answer(ctx context.Context, playerID, option string) (entities.Verdict, error) {
	sess, ok := s.touch(playerID)
	if !ok {
		return entities.VerdictIgnored, ErrSessionNotFound
	}

	return sess.Engine.Answer(ctx, option), nil
}

// Session returns the player's current session.
func (s *GameService) Session(playerID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	return sess, ok
}

// End closes the player's session.
func (s *GameService) End(playerID string) {
	s.mu.Lock()
	sess, ok := s.sessions[playerID]
	delete(s.sessions, playerID)
	s.mu.Unlock()

	if ok {
		sess.close()
	}
}

// Lives returns the player's remaining lives: those of the running session, or
// the ones the next session would start with.
func (s *GameService) Lives(ctx context.Context, playerID string) (int, error) {
	if sess, ok := s.Session(playerID); ok {
		return sess.Engine.State().Lives, nil
	}

	if s.cfg.LivesMode == entities.LivesReset {
		return entities.MaxLives, nil
	}

	persisted, ok, err := s.livesRepo.GetLives(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("get lives: %w", err)
	}
	return entities.RestoreLives(s.cfg.LivesMode, persisted, ok), nil
}

// ResetLives forgets the persisted life counter of the player.
func (s *GameService) ResetLives(ctx context.Context, playerID string) error {
	if err := s.livesRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("reset lives: %w", err)
	}
	return nil
}

// ReapIdle closes sessions idle longer than the session timeout and returns how many were closed.
func (s *GameService) ReapIdle(now time.Time) int {
	if s.cfg.SessionTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-s.cfg.SessionTimeout)

	var idle []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.close()
	}

	return len(idle)
}

// Run reaps idle sessions periodically until ctx is done, then closes every session.
func (s *GameService) Run(ctx context.Context) {
	s.logger.Info("game service started")
	defer s.logger.Info("game service stopped")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(reapSchedule, func() {
		if n := s.ReapIdle(s.scheduler.Now()); n > 0 {
			s.logger.Info("idle sessions reaped", zap.Int("count", n))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	s.closeAll()
}

func (s *GameService) closeAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}

func (s *GameService) touch(playerID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[playerID]
	if ok {
		sess.lastActive = s.scheduler.Now()
	}
	return sess, ok
}

func (s *GameService) notify(sess *Session, hook func(*Session)) func() {
	if hook == nil {
		return nil
	}
	return func() { hook(sess) }
}

// playerLives binds a LivesRepository to one player for the engine.
type playerLives struct {
	repo     LivesRepository
	playerID string
}

func (l playerLives) LoadLives(ctx context.Context) (int, bool, error) {
	return l.repo.GetLives(ctx, l.playerID)
}

func (l playerLives) SaveLives(ctx context.Context, lives int) error {
	return l.repo.SaveLives(ctx, l.playerID, lives)
}
