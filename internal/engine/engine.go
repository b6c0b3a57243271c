// Package engine drives a quiz session: one question at a time, a limited
// number of lives and timed transitions between questions.
package engine

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-engine/internal/domain/entities"
	"github.com/aliskhannn/quiz-engine/internal/timer"
)

// Delays between an answer and its visual effects.
type Delays struct {
	Crossfade     time.Duration // reveal image preload before the crossfade starts
	RevealAdvance time.Duration // correct answer with a reveal image
	Advance       time.Duration // correct answer without a reveal image
	Unlock        time.Duration // incorrect answer, until the next answer is accepted
	GameOver      time.Duration // last life lost, until the game-over callback
}

// DefaultDelays returns the delays of the browser game.
func DefaultDelays() Delays {
	return Delays{
		Crossfade:     50 * time.Millisecond,
		RevealAdvance: 2200 * time.Millisecond,
		Advance:       1200 * time.Millisecond,
		Unlock:        600 * time.Millisecond,
		GameOver:      700 * time.Millisecond,
	}
}

// Config holds everything fixed for the lifetime of an engine.
type Config struct {
	Items      []entities.Item
	LivesMode  entities.LivesMode
	Delays     *Delays    // nil means DefaultDelays
	OnComplete func()     // optional
	OnGameOver func()     // optional
	Rand       *rand.Rand // optional, used to shuffle options
}

// Engine is the quiz state machine. It is safe for concurrent use: input events
// and timer callbacks are serialised by one mutex.
type Engine struct {
	mu sync.Mutex

	items      []entities.Item
	mode       entities.LivesMode
	delays     Delays
	onComplete func()
	onGameOver func()
	rnd        *rand.Rand

	presenter Presenter
	store     LivesStore
	scheduler timer.Scheduler
	logger    *zap.Logger

	index     int
	lives     int
	verifying bool
	phase     entities.Phase

	// generation changes on Init and Close; tasks of older generations are dropped.
	generation uint64
	nextTaskID uint64
	pending    map[uint64]timer.Handle
}

// New validates the configuration and creates an engine. Call Init to start a session.
func New(
	cfg Config,
	presenter Presenter,
	store LivesStore,
	scheduler timer.Scheduler,
	logger *zap.Logger,
) (*Engine, error) {
	if err := entities.ValidateItems(cfg.Items); err != nil {
		return nil, err
	}

	mode := cfg.LivesMode
	if mode == "" {
		mode = entities.LivesPreserve
	}

	delays := DefaultDelays()
	if cfg.Delays != nil {
		delays = *cfg.Delays
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if presenter == nil {
		presenter = NopPresenter{}
	}
	if store == nil {
		store = noStore{}
	}
	if scheduler == nil {
		scheduler = timer.NewReal()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		items:      slices.Clone(cfg.Items),
		mode:       mode,
		delays:     delays,
		onComplete: cfg.OnComplete,
		onGameOver: cfg.OnGameOver,
		rnd:        rnd,
		presenter:  presenter,
		store:      store,
		scheduler:  scheduler,
		logger:     logger,
		lives:      entities.MaxLives,
		phase:      entities.PhaseIdle,
		pending:    make(map[uint64]timer.Handle),
	}, nil
}

// Init starts a new session. Pending transitions of the previous session are cancelled.
func (e *Engine) Init(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.generation++

	e.index = 0
	e.lives = e.restoreLivesLocked(ctx)
	e.verifying = false
	e.phase = entities.PhaseIdle

	e.logger.Debug("session started",
		zap.Int("items", len(e.items)),
		zap.Int("lives", e.lives),
		zap.String("lives_mode", string(e.mode)),
	)

	e.refreshLivesLocked()
	e.loadQuestionLocked()
}

// Current returns the item being asked, or ErrSessionComplete.
func (e *Engine) Current() (entities.Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index >= len(e.items) {
		return entities.Item{}, entities.ErrSessionComplete
	}
	return e.items[e.index], nil
}

// Options returns the options of the current item in a new random order on every call.
// It returns nil when the session is complete.
func (e *Engine) Options() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.index >= len(e.items) {
		return nil
	}
	return e.shuffleLocked(e.items[e.index].Options)
}

// Answer submits the selected option for the current item.
// It is ignored while a previous answer is being resolved and after the session ended.
func (e *Engine) Answer(ctx context.Context, selected string) entities.Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.verifying || e.phase.IsTerminal() || e.index >= len(e.items) {
		e.logger.Debug("answer ignored",
			zap.String("phase", string(e.phase)),
			zap.Bool("verifying", e.verifying),
		)
		return entities.VerdictIgnored
	}

	e.verifying = true
	item := e.items[e.index]

	if item.IsCorrect(selected) {
		e.phase = entities.PhaseAdvancing
		e.presenter.MarkOption(selected, entities.MarkCorrect)

		delay := e.delays.Advance
		if item.HasReveal() {
			delay = e.delays.RevealAdvance
			e.presenter.ShowRevealImage(item.RevealImage)
			e.scheduleLocked(e.delays.Crossfade, func() func() {
				e.presenter.Crossfade()
				return nil
			})
		}
		e.scheduleLocked(delay, e.advanceLocked)

		e.logger.Debug("correct answer", zap.Int("index", e.index))
		return entities.VerdictCorrect
	}

	e.phase = entities.PhaseVerifying
	e.presenter.MarkOption(selected, entities.MarkIncorrect)

	e.lives--
	if err := e.store.SaveLives(ctx, e.lives); err != nil {
		e.logger.Warn("failed to save lives", zap.Int("lives", e.lives), zap.Error(err))
	}
	e.refreshLivesLocked()

	if e.lives == 0 {
		e.phase = entities.PhaseGameOver
		e.scheduleLocked(e.delays.GameOver, e.gameOverLocked)
	}

	e.scheduleLocked(e.delays.Unlock, func() func() {
		e.presenter.MarkOption(selected, entities.MarkNone)
		e.verifying = false
		if e.phase == entities.PhaseVerifying {
			e.phase = entities.PhaseIdle
		}
		return nil
	})

	e.logger.Debug("incorrect answer",
		zap.Int("index", e.index),
		zap.Int("lives", e.lives),
	)
	return entities.VerdictIncorrect
}

// Complete finishes the session. Only the first call shows the popup and runs OnComplete;
// it does nothing after game over.
func (e *Engine) Complete() {
	e.mu.Lock()
	after := e.completeLocked()
	e.mu.Unlock()

	if after != nil {
		after()
	}
}

// State returns a copy of the session state.
func (e *Engine) State() entities.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return entities.Snapshot{
		Index:     e.index,
		Total:     len(e.items),
		Lives:     e.lives,
		Verifying: e.verifying,
		Phase:     e.phase,
	}
}

// Close cancels pending transitions. The engine can be started again with Init.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.generation++
}

func (e *Engine) advanceLocked() func() {
	if e.phase != entities.PhaseAdvancing {
		return nil
	}

	e.cancelPendingLocked()
	e.index++
	e.verifying = false

	if e.index >= len(e.items) {
		return e.completeLocked()
	}

	e.phase = entities.PhaseIdle
	e.loadQuestionLocked()
	return nil
}

func (e *Engine) completeLocked() func() {
	if e.phase.IsTerminal() {
		return nil
	}

	e.phase = entities.PhaseCompleted
	e.verifying = false
	e.presenter.ShowPopup(entities.PopupCompleted)

	e.logger.Info("session completed", zap.Int("items", len(e.items)), zap.Int("lives", e.lives))
	return e.onComplete
}

func (e *Engine) gameOverLocked() func() {
	e.presenter.ShowPopup(entities.PopupGameOver)

	e.logger.Info("game over", zap.Int("index", e.index))
	return e.onGameOver
}

func (e *Engine) loadQuestionLocked() {
	item := e.items[e.index]

	e.presenter.SetPromptImage(item.PromptImage)
	e.presenter.HideRevealImage()
	e.presenter.SetPromptText(item.PromptText)
	e.presenter.SetOptionList(e.shuffleLocked(item.Options))
}

func (e *Engine) refreshLivesLocked() {
	for i := 0; i < entities.MaxLives; i++ {
		state := entities.LifeLost
		if i < e.lives {
			state = entities.LifeFull
		}
		e.presenter.SetLifeIcon(i, state)
	}
}

func (e *Engine) restoreLivesLocked(ctx context.Context) int {
	if e.mode == entities.LivesReset {
		return entities.MaxLives
	}

	persisted, ok, err := e.store.LoadLives(ctx)
	if err != nil {
		e.logger.Warn("failed to load lives", zap.Error(err))
		ok = false
	}
	return entities.RestoreLives(e.mode, persisted, ok)
}

func (e *Engine) shuffleLocked(options []string) []string {
	shuffled := slices.Clone(options)
	e.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// scheduleLocked runs fn under the lock after d unless the session changed meanwhile.
// The function returned by fn, if any, runs after the lock is released.
func (e *Engine) scheduleLocked(d time.Duration, fn func() func()) {
	gen := e.generation
	e.nextTaskID++
	id := e.nextTaskID

	e.pending[id] = e.scheduler.AfterFunc(d, func() {
		e.mu.Lock()
		if gen != e.generation {
			e.mu.Unlock()
			return
		}
		if _, ok := e.pending[id]; !ok {
			e.mu.Unlock()
			return
		}
		delete(e.pending, id)
		after := fn()
		e.mu.Unlock()

		if after != nil {
			after()
		}
	})
}

func (e *Engine) cancelPendingLocked() {
	for id, h := range e.pending {
		h.Stop()
		delete(e.pending, id)
	}
}
