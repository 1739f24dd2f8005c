// internal/game/engine.go
//
// Round controller for the guessing game.
// Responsibilities:
//   - Fetch a record from the catalog and start a round (Loading → InProgress).
//   - Validate and apply guesses, track score and high score.
//   - Reveal on a correct guess or after MaxGuesses misses (→ Revealed).
//   - Schedule the automatic next round after a correct guess; a manual
//     NextRound cancels it.
//
// Notes:
//   - All mutations run under mu; the catalog fetch runs outside it.
//   - The high score is written through the injected store.Store whenever
//     the running score exceeds it.
//   - Every transition is published to the optional notifier. Snapshots
//     carry a sequence number because publishing happens outside mu and
//     concurrent transitions may reach subscribers out of order.

package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/youpv/whosthatpokemon/internal/catalog"
	"github.com/youpv/whosthatpokemon/internal/store"
)

// DefaultRevealDelay leaves time for the reveal animation before the
// next round loads.
const DefaultRevealDelay = 2 * time.Second

// errStale makes a scheduled transition give way to one that already happened.
var errStale = errors.New("stale transition")

// Catalog is the record source used by the controller.
type Catalog interface {
	FetchRandomRecord(ctx context.Context) (catalog.Record, error)
}

// Controller owns the visible game state and the round state machine.
type Controller struct {
	catalog     Catalog
	scores      store.Store
	scheduler   Scheduler
	revealDelay time.Duration
	notify      func(Snapshot)
	logger      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     State
	round     Round
	score     int
	highScore int
	seq       uint64 // bumped on every transition
	fetching  bool   // a catalog request is in flight
	pending   Cancel // automatic next-round transition, if scheduled
}

// Option customises a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer-backed scheduler.
func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.scheduler = s } }

// WithRevealDelay sets the delay between a correct guess and the next round.
func WithRevealDelay(d time.Duration) Option { return func(c *Controller) { c.revealDelay = d } }

// WithNotifier registers a callback invoked with a snapshot after each transition.
func WithNotifier(f func(Snapshot)) Option { return func(c *Controller) { c.notify = f } }

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Controller) { c.logger = l } }

// NewController constructs a controller in the Loading state.
func NewController(cat Catalog, scores store.Store, opts ...Option) *Controller {
	c := &Controller{
		catalog:     cat,
		scores:      scores,
		scheduler:   NewTimerScheduler(),
		revealDelay: DefaultRevealDelay,
		logger:      log.Logger,
		state:       StateLoading,
	}
	for _, o := range opts {
		o(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// LoadHighScore reads the persisted high score. Called once at startup.
func (c *Controller) LoadHighScore(ctx context.Context) error {
	hs, err := c.scores.Get(ctx, store.HighScoreKey)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if hs > c.highScore {
		c.highScore = hs
	}
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
	return nil
}

// NextRound enters Loading and fetches a new record.
// It is only valid from Revealed, or from Loading when no record was
// obtained; a round in progress returns ErrNotAccepting. A call made while
// a fetch is already in flight is a no-op. On fetch failure the controller
// stays in Loading and the error is returned.
func (c *Controller) NextRound(ctx context.Context) error {
	return c.enterLoading(ctx, func() error {
		if c.state == StateInProgress {
			return ErrNotAccepting
		}
		return nil
	})
}

// enterLoading starts a new round if no fetch is in flight and guard
// (checked under mu) returns nil. errStale from guard is a silent no-op.
func (c *Controller) enterLoading(ctx context.Context, guard func() error) error {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return nil
	}
	if err := guard(); err != nil {
		c.mu.Unlock()
		if errors.Is(err, errStale) {
			return nil
		}
		return err
	}
	c.cancelPendingLocked()
	c.fetching = true
	c.state = StateLoading
	c.round = Round{Number: c.round.Number + 1, Guesses: []string{}}
	number := c.round.Number
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)

	rec, err := c.catalog.FetchRandomRecord(ctx)

	c.mu.Lock()
	c.fetching = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error().Err(err).Uint64("round", number).Msg("load record")
		return err
	}
	c.round.Record = &rec
	c.state = StateInProgress
	c.seq++
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug().Uint64("round", number).Int("recordId", rec.ID).Msg("round started")
	c.publish(snap)
	return nil
}

// Guess evaluates one guess against the active record.
func (c *Controller) Guess(ctx context.Context, guess string) (Outcome, error) {
	if guess == "" {
		return Outcome{}, ErrEmptyGuess
	}

	c.mu.Lock()
	if c.state != StateInProgress || c.round.Record == nil || c.round.Revealed {
		c.mu.Unlock()
		return Outcome{}, ErrNotAccepting
	}
	rec := *c.round.Record
	correct := CheckGuess(guess, rec)
	c.round.Guesses = append(c.round.Guesses, guess)

	if correct {
		c.score++
		if c.score > c.highScore {
			c.highScore = c.score
			if err := c.scores.Set(ctx, store.HighScoreKey, c.highScore); err != nil {
				c.logger.Warn().Err(err).Int("highScore", c.highScore).Msg("persist high score")
			}
		}
		c.revealLocked()
		number := c.round.Number
		c.pending = c.scheduler.AfterFunc(c.revealDelay, func() { c.autoAdvance(number) })
	} else if len(c.round.Guesses) >= MaxGuesses {
		if !c.round.Revealed {
			c.score = 0
		}
		c.revealLocked()
	}
	c.seq++
	out := Outcome{
		Correct:  correct,
		Close:    !correct && IsClose(guess, rec),
		Snapshot: c.snapshotLocked(),
	}
	c.mu.Unlock()

	c.publish(out.Snapshot)
	return out, nil
}

// Snapshot returns a copy of the current visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels any pending automatic transition and the controller context.
func (c *Controller) Close() {
	c.mu.Lock()
	c.cancelPendingLocked()
	c.mu.Unlock()
	c.cancel()
}

// autoAdvance is the scheduled reveal→load transition for round number.
// It does nothing if that round has already been left.
func (c *Controller) autoAdvance(number uint64) {
	_ = c.enterLoading(c.ctx, func() error {
		if c.round.Number != number || c.state != StateRevealed {
			return errStale
		}
		return nil
	})
}

func (c *Controller) revealLocked() {
	c.round.Revealed = true
	c.state = StateRevealed
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Seq:         c.seq,
		State:       c.state,
		Round:       c.round.Number,
		Revealed:    c.round.Revealed,
		Guesses:     append([]string{}, c.round.Guesses...),
		GuessesLeft: MaxGuesses - len(c.round.Guesses),
		Score:       c.score,
		HighScore:   c.highScore,
	}
	if rec := c.round.Record; rec != nil {
		s.ImageURL = rec.ImageURL
		if c.round.Revealed {
			s.RecordID = rec.ID
			s.Name = DisplayName(rec.Name)
		}
	}
	return s
}

func (c *Controller) publish(s Snapshot) {
	if c.notify != nil {
		c.notify(s)
	}
}
