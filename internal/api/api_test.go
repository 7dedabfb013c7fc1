package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/api"
	"github.com/vytor/nihaocards/internal/importer"
	"github.com/vytor/nihaocards/internal/models"
	"github.com/vytor/nihaocards/internal/repository/sqlite"
	"github.com/vytor/nihaocards/internal/services"
	"github.com/vytor/nihaocards/internal/session"
	"github.com/vytor/nihaocards/internal/testutil"
	"github.com/vytor/nihaocards/internal/testutil/mocks"
)

type harness struct {
	t      *testing.T
	server *httptest.Server
	userID string
}

func newHarness(t *testing.T) *harness {
	sqlDB := testutil.NewTestDB(t)
	testutil.SeedCards(t, sqlDB, 1, 2, 3, 4, 5)

	cards := sqlite.NewCardRepository(sqlDB)
	progress := sqlite.NewProgressRepository(sqlDB)
	scores := sqlite.NewScoreRepository(sqlDB)
	settings := services.NewSettingsService(sqlite.NewSettingsRepository(sqlDB), progress,
		services.Timers{Flashcard: 60, MiniGame: 60, Type: 60})

	jobQueue := new(mocks.MockJobQueue)
	jobQueue.On("EnqueueStickerUnlock", mock.Anything).Return(nil)

	sessions := services.NewSessionService(services.SessionDeps{
		Cards:    cards,
		Progress: progress,
		Scores:   scores,
		Answers:  sqlite.NewAnswerRepository(sqlDB),
		Played:   session.NewFallbackStore(sqlite.NewPlayedRepository(sqlDB)),
		Settings: settings,
	}, services.SessionOptions{MiniGameResetsLevel: true, Seed: 7, TickInterval: time.Hour})

	srv := &api.Server{
		DB:               sqlDB,
		UserService:      services.NewUserService(sqlite.NewUserRepository(sqlDB)),
		CatalogService:   services.NewCatalogService(cards, importer.DefaultConfig()),
		SelectionService: services.NewSelectionService(cards, progress),
		SettingsService:  settings,
		SessionService:   sessions,
		ScoreService:     services.NewScoreService(scores, progress, 100),
		WrongWordService: services.NewWrongWordService(sqlite.NewWrongWordRepository(sqlDB)),
		RewardService:    services.NewRewardService(sqlite.NewRewardRepository(sqlDB), jobQueue),
	}

	h := &harness{t: t, server: httptest.NewServer(srv.Routes())}
	t.Cleanup(func() {
		h.server.Close()
		sessions.Close()
		testutil.MustClose(t, sqlDB)
	})
	return h
}

func (h *harness) do(method, path string, body any, out any) int {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.server.URL+path, &buf)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if h.userID != "" {
		req.Header.Set("X-User-ID", h.userID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/healthz", nil, nil))
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/readyz", nil, nil))
}

func TestRequiresUser(t *testing.T) {
	h := newHarness(t)

	var errResp errorResponse
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/cards", nil, &errResp))
	assert.Equal(t, "UNAUTHORIZED", errResp.Error.Code)

	h.userID = "nobody"
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/cards", nil, &errResp))
}

func TestFlashcardRoundTrip(t *testing.T) {
	h := newHarness(t)

	var user models.User
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/users",
		map[string]string{"email": "mei@example.com", "display_name": "Mei"}, &user))
	h.userID = user.ID

	var cards []models.Card
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/cards", nil, &cards))
	assert.Len(t, cards, 5)

	var errResp errorResponse
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/flashcards/levels/1/session", nil, &errResp))
	assert.Equal(t, "NO_WORDS", errResp.Error.Code)

	var selection struct {
		CardIDs []int64 `json:"card_ids"`
		Changed int     `json:"changed"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/selection/first/2", nil, &selection))
	assert.Equal(t, []int64{1, 2}, selection.CardIDs)
	assert.Equal(t, 2, selection.Changed)

	var levels []models.LevelAvailability
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/flashcards/levels", nil, &levels))
	require.Len(t, levels, 8)
	assert.Equal(t, 2, levels[0].Count)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/flashcards/levels/4/session", nil, &errResp))
	assert.Equal(t, "LEVEL_LOCKED", errResp.Error.Code)

	var view models.SessionView
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/flashcards/levels/1/session", nil, &view))
	require.NotNil(t, view.Current)
	assert.Equal(t, 2, view.Remaining)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/session/answer",
		map[string]any{"card_id": view.Current.Card.ID}, &errResp))

	var out models.AnswerOutcome
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/session/answer",
		map[string]any{"card_id": view.Current.Card.ID, "correct": false}, &out))
	assert.False(t, out.Correct)
	require.NotNil(t, out.Next)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/session/answer",
		map[string]any{"card_id": out.Next.Card.ID, "correct": true}, &out))
	assert.True(t, out.Done)

	var words []models.WrongWord
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/wrong-words", nil, &words))
	require.Len(t, words, 1)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/wrong-words/"+words[0].ID, nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, "/wrong-words/"+words[0].ID, nil, &errResp))

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/session", nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/session", nil, &errResp))
}

func TestMiniGameAndScores(t *testing.T) {
	h := newHarness(t)

	var user models.User
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/users",
		map[string]string{"email": "lin@example.com", "display_name": "Lin"}, &user))
	h.userID = user.ID

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/selection",
		map[string]any{"card_ids": []int64{1, 2, 3, 42}}, nil))

	var overview models.MiniGameOverview
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/minigames/pinyin", nil, &overview))
	assert.Equal(t, 3, overview.NormalCount)
	assert.Equal(t, 0, overview.ReviewCount)

	var errResp errorResponse
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/minigames/pinyin/session",
		map[string]string{"mode": "sideways"}, &errResp))

	var view models.SessionView
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/minigames/pinyin/session",
		map[string]string{"mode": "normal"}, &view))
	require.Len(t, view.Current.Choices, 4)

	var out models.AnswerOutcome
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/session/answer",
		map[string]any{"card_id": view.Current.Card.ID, "choice_id": view.Current.Card.ID}, &out))
	require.NotNil(t, out.Score)
	assert.Equal(t, 1, out.Score.TotalScore)

	var stats models.PersonalStats
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/scores/me", nil, &stats))
	assert.Equal(t, 3, stats.SelectedWords)
	assert.Equal(t, 1, stats.PerGame[models.GamePinyin].Current)

	var rankings models.Rankings
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/scores/rankings?game=pinyin", nil, &rankings))
	assert.Equal(t, 1, rankings.MyRank)

	var settings models.Settings
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/settings/schedule/date",
		map[string]int{"date": 12}, &settings))
	assert.Equal(t, []int{12}, settings.Schedule.Lv5)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/settings/timers",
		map[string]int{"flashcard_timer": 0, "minigame_timer": 5, "type_timer": 5}, &errResp))
}
