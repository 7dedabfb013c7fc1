package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/nihaocards/internal/errors"
	"github.com/vytor/nihaocards/internal/logger"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/progression"
	"github.com/vytor/nihaocards/internal/repository"
	"github.com/vytor/nihaocards/internal/schedule"
	"github.com/vytor/nihaocards/internal/scoring"
	"github.com/vytor/nihaocards/internal/session"
)

// distractorCount is the number of wrong options in a multiple-choice question.
const distractorCount = 3

// Answer is one submission for the current question. Which field is read
// depends on the game: Correct for flashcards, ChoiceID for the choice
// games and Text for typing. TimedOut marks a client-side timer expiry.
type Answer struct {
	CardID   int64   `json:"card_id"`
	ChoiceID *int64  `json:"choice_id,omitempty"`
	Text     *string `json:"text,omitempty"`
	Correct  *bool   `json:"correct,omitempty"`
	TimedOut bool    `json:"timed_out,omitempty"`
}

// SessionService hosts at most one play session per user.
type SessionService interface {
	StartFlashcard(ctx context.Context, userID, level string) (*models.SessionView, error)
	StartMiniGame(ctx context.Context, userID, game, mode string) (*models.SessionView, error)
	Current(ctx context.Context, userID string) (*models.SessionView, error)
	Answer(ctx context.Context, userID string, a Answer) (*models.AnswerOutcome, error)
	Exit(ctx context.Context, userID string) error
	MiniGameOverview(ctx context.Context, userID, game string) (*models.MiniGameOverview, error)
	// EvictIdle ends sessions untouched for longer than maxIdle.
	EvictIdle(ctx context.Context, maxIdle time.Duration) int
	// Close ends every session and stops their countdowns.
	Close()
}

// SessionDeps are the collaborators of the session service.
type SessionDeps struct {
	Cards    repository.CardRepository
	Progress repository.ProgressRepository
	Scores   repository.ScoreRepository
	Answers  repository.AnswerRepository
	Played   session.PlayedStore
	Settings SettingsService
}

// SessionOptions tune the session service.
type SessionOptions struct {
	// MiniGameResetsLevel makes a wrong mini-game answer also send the card
	// back to flashcard level 1.
	MiniGameResetsLevel bool
	// Seed fixes the shuffle of every session; 0 seeds from the clock.
	Seed uint64
	// TickInterval is the length of one countdown second.
	TickInterval time.Duration
	Now          func() time.Time
}

type sessionService struct {
	deps SessionDeps
	opts SessionOptions

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// NewSessionService creates a new SessionService
func NewSessionService(deps SessionDeps, opts SessionOptions) SessionService {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &sessionService{
		deps:     deps,
		opts:     opts,
		sessions: make(map[string]*liveSession),
	}
}

// liveSession is the in-memory state of one session. mu serializes answers
// and timer expiry.
type liveSession struct {
	mu sync.Mutex

	id     string
	userID string
	game   models.GameType
	mode   models.Mode
	level  models.Level
	timer  int

	queue    *session.Queue
	acct     *scoring.Accountant
	rng      *rand.Rand
	cards    map[int64]models.Card
	catalog  []models.Card
	seq      int
	current  *models.Question
	last     *models.AnswerOutcome
	timeout  *session.Countdown
	touched  time.Time
	finished bool
}

func (s *sessionService) StartFlashcard(ctx context.Context, userID, level string) (*models.SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard")
	log.Debug("starting flashcard session: user_id=%s, level=%s", userID, level)

	lvl, err := models.ParseLevel(level)
	if err != nil {
		return nil, errors.NewValidationError("level", err.Error())
	}

	settings, err := s.deps.Settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !schedule.IsLevelAvailable(settings.Schedule, lvl, s.opts.Now()) {
		return nil, errors.NewLevelLockedError(lvl.String())
	}

	records, err := s.deps.Progress.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	pool := progression.FlashcardPool(records, lvl)

	ls := &liveSession{
		userID: userID,
		game:   models.GameFlashcard,
		level:  lvl,
		timer:  settings.TimerFor(models.GameFlashcard),
	}
	return s.start(ctx, ls, pool, lvl.QueueMode(), "level "+lvl.String())
}

func (s *sessionService) StartMiniGame(ctx context.Context, userID, game, mode string) (*models.SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("minigame")
	log.Debug("starting mini-game session: user_id=%s, game=%s, mode=%s", userID, game, mode)

	g, ok := models.ParseMiniGame(game)
	if !ok {
		return nil, errors.NewValidationError("game", "unknown game type")
	}
	m, ok := models.ParseMode(mode)
	if !ok {
		return nil, errors.NewValidationError("mode", "must be 'normal' or 'review'")
	}

	settings, err := s.deps.Settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.deps.Progress.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	pool := progression.SelectedIDs(records)
	if m == models.ModeReview {
		pool = progression.ReviewPool(records, g)
	}

	score, err := s.deps.Scores.Get(ctx, userID, g)
	if err != nil {
		log.Error("failed to get score: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if score == nil {
		score = &models.ScoreRecord{UserID: userID, Game: g}
	}

	ls := &liveSession{
		userID: userID,
		game:   g,
		mode:   m,
		timer:  settings.TimerFor(g),
		acct:   scoring.New(*score),
	}
	if g != models.GameTyping {
		ls.catalog, err = s.deps.Cards.List(ctx)
		if err != nil {
			log.Error("failed to list cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}
	return s.start(ctx, ls, pool, string(m), fmt.Sprintf("%s %s pool", g, m))
}

// start builds the queue, asks the first question and replaces any session
// the user already had.
func (s *sessionService) start(ctx context.Context, ls *liveSession, pool []int64, queueMode, poolName string) (*models.SessionView, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	ls.id = uuid.NewString()
	ls.rng = session.NewRand(s.opts.Seed)
	ls.queue = session.NewQueue(s.deps.Played, ls.rng, ls.userID, ls.game, queueMode)
	ls.touched = s.opts.Now()

	if err := ls.queue.Build(ctx, pool); err != nil {
		if stderrors.Is(err, session.ErrNoWords) {
			log.Info("no words to play: user_id=%s, pool=%s", ls.userID, poolName)
			return nil, errors.NewNoWordsError(poolName)
		}
		log.Error("failed to build queue: %v", err)
		return nil, errors.NewInternalError(err)
	}

	cards, err := s.deps.Cards.GetMany(ctx, ls.queue.Remaining())
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	ls.cards = cards

	ls.mu.Lock()
	s.ask(ctx, ls)
	view := ls.view()
	ls.mu.Unlock()

	s.mu.Lock()
	prev := s.sessions[ls.userID]
	s.sessions[ls.userID] = ls
	s.mu.Unlock()
	if prev != nil {
		log.Debug("replacing session %s", prev.id)
		prev.end()
	}

	log.Info("session started: id=%s, game=%s, mode=%s, cards=%d", ls.id, ls.game, queueMode, ls.queue.Len())
	return view, nil
}

// ask makes the queue front the current question and starts its countdown.
// Callers hold ls.mu.
func (s *sessionService) ask(ctx context.Context, ls *liveSession) {
	id, ok := ls.queue.Current()
	if !ok {
		ls.current = nil
		return
	}
	card, ok := ls.cards[id]
	if !ok {
		card = models.Card{ID: id}
	}

	ls.seq++
	ls.current = &models.Question{
		Seq:          ls.seq,
		Card:         card,
		Choices:      buildChoices(ls.rng, ls.game, card, ls.catalog),
		TimerSeconds: ls.timer,
		Remaining:    ls.queue.Len(),
	}

	// The timer outlives the request that started it.
	timerCtx := logger.NewContext(context.Background(), logger.FromContext(ctx))
	seq := ls.seq
	ls.timeout.Stop()
	ls.timeout = session.StartCountdown(timerCtx, ls.timer, s.opts.TickInterval, nil, func() {
		s.expire(timerCtx, ls, seq)
	})
}

// expire answers question seq as timed out if it is still current.
func (s *sessionService) expire(ctx context.Context, ls *liveSession, seq int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.finished || ls.current == nil || ls.current.Seq != seq {
		return
	}
	logger.FromContext(ctx).WithPrefix("session").Debug("question %d timed out: card_id=%d", seq, ls.current.Card.ID)
	s.apply(ctx, ls, progression.TimedOut)
}

func (s *sessionService) Current(ctx context.Context, userID string) (*models.SessionView, error) {
	ls := s.get(userID)
	if ls == nil {
		return nil, errors.NewNotFoundError("session", userID)
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.view(), nil
}

func (s *sessionService) Answer(ctx context.Context, userID string, a Answer) (*models.AnswerOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	ls := s.get(userID)
	if ls == nil {
		return nil, errors.NewNotFoundError("session", userID)
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.touched = s.opts.Now()

	// A repeated submission for the card just answered gets the same outcome.
	if ls.current == nil || ls.current.Card.ID != a.CardID {
		if ls.last != nil && ls.last.CardID == a.CardID {
			log.Debug("replayed answer: card_id=%d", a.CardID)
			out := *ls.last
			return &out, nil
		}
		if ls.current == nil {
			return nil, errors.NewConflictError("session is finished")
		}
		return nil, errors.NewConflictError(fmt.Sprintf("card %d is not the current question", a.CardID))
	}

	result, err := judge(ls.game, ls.current.Card, a)
	if err != nil {
		return nil, err
	}
	out := s.apply(ctx, ls, result)
	return &out, nil
}

// judge grades a against card for game.
func judge(game models.GameType, card models.Card, a Answer) (progression.Result, error) {
	if a.TimedOut {
		return progression.TimedOut, nil
	}
	var correct bool
	switch game {
	case models.GameFlashcard:
		if a.Correct == nil {
			return progression.Wrong, errors.NewBadRequestError("correct is required")
		}
		correct = *a.Correct
	case models.GameTyping:
		if a.Text == nil || strings.TrimSpace(*a.Text) == "" {
			return progression.Wrong, errors.NewBadRequestError("text is required")
		}
		correct = strings.EqualFold(strings.TrimSpace(*a.Text), strings.TrimSpace(card.TestSentence))
	default:
		if a.ChoiceID == nil {
			return progression.Wrong, errors.NewBadRequestError("choice_id is required")
		}
		correct = *a.ChoiceID == card.ID
	}
	if correct {
		return progression.Correct, nil
	}
	return progression.Wrong, nil
}

// apply records result for the current question, commits the writes and
// moves to the next question. Callers hold ls.mu.
func (s *sessionService) apply(ctx context.Context, ls *liveSession, result progression.Result) models.AnswerOutcome {
	log := logger.FromContext(ctx).WithPrefix("session").WithFields(map[string]any{
		"user_id": ls.userID,
		"game":    ls.game,
	})
	ls.timeout.Stop()
	cardID := ls.current.Card.ID
	now := s.opts.Now().UTC()

	rec, err := s.deps.Progress.Get(ctx, ls.userID, cardID)
	readFailed := err != nil
	if err != nil {
		log.Warn("failed to read progress for card %d, progress left unchanged: %v", cardID, err)
	}
	// No row means the card was deselected mid-session. Score it against
	// defaults but never write the row back, or it would be selected again.
	deselected := !readFailed && rec == nil
	if rec == nil {
		fresh := models.NewProgressRecord(ls.userID, cardID)
		rec = &fresh
	}

	var outcome progression.Outcome
	if ls.game == models.GameFlashcard {
		outcome = progression.ApplyFlashcardAnswer(*rec, ls.level, result)
	} else {
		outcome = progression.ApplyMiniGameAnswer(*rec, ls.game, ls.mode, result, s.opts.MiniGameResetsLevel)
	}
	outcome.Record.UpdatedAt = now

	step, err := ls.queue.Advance(cardID, outcome.DropFromQueue)
	if err != nil {
		// Only reachable if the queue and the current question disagree.
		log.Error("failed to advance queue: %v", err)
		step = session.Step{Done: ls.queue.Len() == 0}
	}

	commit := models.AnswerCommit{
		Played: &models.PlayedSet{
			UserID:    ls.userID,
			Game:      ls.game,
			Mode:      ls.queue.Mode,
			IDs:       step.Played,
			UpdatedAt: now,
		},
	}
	if !readFailed && !deselected {
		commit.Progress = &outcome.Record
	}

	out := models.AnswerOutcome{
		CardID:   cardID,
		Correct:  result.Correct(),
		TimedOut: result == progression.TimedOut,
		Level:    outcome.Record.Level,
		Done:     step.Done,
	}
	if ls.acct != nil {
		update := ls.acct.Record(result.Correct())
		out.Score = &update
		snapshot := ls.acct.Snapshot()
		snapshot.UpdatedAt = now
		commit.Score = &snapshot
	}
	if outcome.LogWrong {
		commit.WrongWord = &models.WrongWord{
			ID:        uuid.NewString(),
			UserID:    ls.userID,
			CardID:    cardID,
			Game:      ls.game,
			CreatedAt: now,
		}
	}

	if err := s.deps.Answers.Commit(ctx, commit); err != nil {
		log.Warn("failed to save answer for card %d, continuing: %v", cardID, err)
		if err := s.deps.Played.SetPlayedIDs(ctx, ls.userID, ls.game, ls.queue.Mode, step.Played); err != nil {
			log.Warn("failed to save played ids: %v", err)
		}
	}

	if step.Done {
		log.Info("session complete: id=%s", ls.id)
		ls.current = nil
	} else {
		s.ask(ctx, ls)
		out.Next = ls.current
	}
	ls.last = &out
	return out
}

func (s *sessionService) Exit(ctx context.Context, userID string) error {
	s.mu.Lock()
	ls := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if ls == nil {
		return errors.NewNotFoundError("session", userID)
	}
	ls.end()
	logger.FromContext(ctx).WithPrefix("session").Info("session exited: id=%s", ls.id)
	return nil
}

func (s *sessionService) MiniGameOverview(ctx context.Context, userID, game string) (*models.MiniGameOverview, error) {
	log := logger.FromContext(ctx).WithPrefix("minigame")

	g, ok := models.ParseMiniGame(game)
	if !ok {
		return nil, errors.NewValidationError("game", "unknown game type")
	}
	records, err := s.deps.Progress.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list progress: %v", err)
		return nil, errors.NewInternalError(err)
	}

	played, err := s.deps.Played.PlayedIDs(ctx, userID, g, string(models.ModeNormal))
	if err != nil {
		log.Warn("failed to load played ids: %v", err)
		played = nil
	}
	score, err := s.deps.Scores.Get(ctx, userID, g)
	if err != nil {
		log.Error("failed to get score: %v", err)
		return nil, errors.NewInternalError(err)
	}

	overview := &models.MiniGameOverview{
		Game:        g,
		ReviewCount: len(progression.ReviewPool(records, g)),
		NormalCount: session.RemainingInLap(progression.SelectedIDs(records), played),
	}
	if score != nil {
		overview.TotalScore = score.TotalScore
	}
	return overview, nil
}

func (s *sessionService) EvictIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := s.opts.Now().Add(-maxIdle)

	s.mu.Lock()
	var idle []*liveSession
	for userID, ls := range s.sessions {
		ls.mu.Lock()
		stale := ls.touched.Before(cutoff)
		ls.mu.Unlock()
		if stale {
			idle = append(idle, ls)
			delete(s.sessions, userID)
		}
	}
	s.mu.Unlock()

	for _, ls := range idle {
		ls.end()
	}
	if len(idle) > 0 {
		logger.FromContext(ctx).WithPrefix("session").Info("evicted %d idle sessions", len(idle))
	}
	return len(idle)
}

func (s *sessionService) Close() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*liveSession)
	s.mu.Unlock()

	for _, ls := range all {
		ls.end()
	}
}

func (s *sessionService) get(userID string) *liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// end stops the countdown and abandons the queue. The played set stays as
// persisted so the next start resumes the lap.
func (ls *liveSession) end() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.finished = true
	ls.timeout.Stop()
	ls.queue.Abort()
}

// view snapshots the session. Callers hold ls.mu.
func (ls *liveSession) view() *models.SessionView {
	v := &models.SessionView{
		ID:          ls.id,
		Game:        ls.game,
		Mode:        ls.queue.Mode,
		Phase:       ls.queue.Phase().String(),
		Current:     ls.current,
		LastOutcome: ls.last,
		Remaining:   ls.queue.Len(),
	}
	if ls.acct != nil {
		v.TotalScore = ls.acct.Total()
		v.Streak = ls.acct.Streak()
	}
	return v
}

// buildChoices returns card plus up to distractorCount other cards with
// distinct labels, shuffled. Games without options get nil.
func buildChoices(rng *rand.Rand, game models.GameType, card models.Card, catalog []models.Card) []models.Choice {
	if game == models.GameFlashcard || game == models.GameTyping {
		return nil
	}

	answer := choiceLabel(game, card)
	choices := []models.Choice{{CardID: card.ID, Label: answer}}
	seen := map[string]bool{answer: true}
	for _, i := range rng.Perm(len(catalog)) {
		if len(choices) == distractorCount+1 {
			break
		}
		other := catalog[i]
		label := choiceLabel(game, other)
		if other.ID == card.ID || label == "" || seen[label] {
			continue
		}
		seen[label] = true
		choices = append(choices, models.Choice{CardID: other.ID, Label: label})
	}

	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	return choices
}

func choiceLabel(game models.GameType, c models.Card) string {
	switch game {
	case models.GameThai:
		return c.Translation
	case models.GamePinyin:
		return c.Pinyin
	case models.GameVocab:
		return c.Hanzi
	default:
		return ""
	}
}
