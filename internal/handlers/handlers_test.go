package handlers

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/bingo-server/internal/bingo"
	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/internal/repository"
)

func TestMain(m *testing.M) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	os.Exit(m.Run())
}

type fakeRepo struct {
	mu       sync.Mutex
	next     int64
	sessions map[int64]repository.GameSession
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: map[int64]repository.GameSession{}}
}

func (f *fakeRepo) CreateGameSession(
	_ context.Context, round *bingo.Round, params repository.CreateGameSessionParams,
) (*repository.GameSession, error) {
	state, err := round.Bytes()
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	session := repository.GameSession{
		GameSessionId: f.next,
		PlayerId:      params.PlayerId,
		BoardSize:     round.Boards()[0].Size(),
		BoardCount:    len(round.Boards()),
		DrawCount:     len(round.Draws()),
		Drawn:         len(round.Drawn()),
		Finished:      round.Finished(),
		State:         state,
		StartedAt:     time.Now(),
	}
	f.sessions[session.GameSessionId] = session
	return &session, nil
}

func (f *fakeRepo) FetchGameSession(_ context.Context, id int64) (*repository.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &session, nil
}

func (f *fakeRepo) UpdateGameSession(
	_ context.Context, id int64, p repository.UpdateGameSessionParams,
) (*repository.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if p.Drawn != nil {
		session.Drawn = *p.Drawn
	}
	if p.Finished != nil {
		session.Finished = *p.Finished
	}
	if p.FirstScore != nil {
		session.FirstScore = p.FirstScore
	}
	if p.LastScore != nil {
		session.LastScore = p.LastScore
	}
	if p.EndedAt != nil {
		session.EndedAt = p.EndedAt
	}
	if p.State != nil {
		session.State = *p.State
	}
	f.sessions[id] = session
	return &session, nil
}

func (f *fakeRepo) GetHighscores(
	_ context.Context, filter repository.HighscoreFilter,
) ([]repository.Highscore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var highscores []repository.Highscore
	for _, s := range f.sessions {
		if !s.Finished || s.FirstScore == nil || s.EndedAt == nil {
			continue
		}
		if filter.BoardSize != nil && *filter.BoardSize != s.BoardSize {
			continue
		}
		highscores = append(highscores, repository.Highscore{
			GameSessionId: s.GameSessionId,
			BoardSize:     s.BoardSize,
			BoardCount:    s.BoardCount,
			FirstScore:    *s.FirstScore,
			LastScore:     s.LastScore,
			EndedAt:       *s.EndedAt,
		})
	}
	return highscores, nil
}

func sampleInput(t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile("testdata/bingo.txt")
	require.NoError(t, err)
	return string(b)
}

func newTestRouter(repo GameRepository) *http.ServeMux {
	logger, _ := test.NewNullLogger()
	game := NewGameHandler(
		logger, repo, config.NewWebSocket(), rand.New(rand.NewPCG(1, 2)),
	)
	puzzles := NewPuzzleHandler(logger)

	router := http.NewServeMux()
	router.HandleFunc("POST /game", game.NewGame)
	router.HandleFunc("GET /game/{id}", game.Fetch)
	router.HandleFunc("POST /game/{id}/draw", game.Draw)
	router.HandleFunc("POST /game/{id}/finish", game.Finish)
	router.HandleFunc("/game/{id}/connect", game.ConnectWS)
	router.HandleFunc("GET /highscores", game.Highscores)
	router.HandleFunc("GET /solve", puzzles.List)
	router.HandleFunc("POST /solve/{puzzle}", puzzles.Solve)
	return router
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) GameSessionDTO {
	t.Helper()
	var dto GameSessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	return dto
}

func TestSolve(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	tests := []struct {
		name   string
		target string
		body   string
		status int
		want   string
	}{
		{"bingo sample", "/solve/bingo", sampleInput(t), http.StatusOK, `{"part1":4512,"part2":1924}`},
		{"sonar sample", "/solve/sonar", "199\n200\n208\n210\n200\n207\n240\n269\n260\n263\n", http.StatusOK, `{"part1":7,"part2":5}`},
		{"unknown puzzle", "/solve/lanternfish", "", http.StatusNotFound, ""},
		{"malformed input", "/solve/sonar", "deep\n", http.StatusBadRequest, ""},
		{"no winner", "/solve/bingo", "1,4\n\n1 2\n3 4\n", http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestListPuzzles(t *testing.T) {
	rec := serve(t, newTestRouter(newFakeRepo()), http.MethodGet, "/solve", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["bingo","diagnostic","dive","sonar"]`, rec.Body.String())
}

func TestNewGameFromBody(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec := serve(t, router, http.MethodPost, "/game", sampleInput(t))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	dto := decodeSession(t, rec)
	assert.Equal(t, "1", dto.GameSessionId)
	require.Len(t, dto.Boards, 3)
	assert.Len(t, dto.Boards[0], 5)
	assert.Equal(t, 22, dto.Boards[0][0][0].Value)
	assert.Empty(t, dto.Drawn)
	assert.Equal(t, 27, dto.Remaining)
	assert.Empty(t, dto.Winners)
	assert.False(t, dto.Finished)
}

func TestNewGameGenerated(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	rec := serve(t, router, http.MethodPost, "/game?size=3&boards=2&pool=20", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	dto := decodeSession(t, rec)
	require.Len(t, dto.Boards, 2)
	for _, board := range dto.Boards {
		require.Len(t, board, 3)
		for _, row := range board {
			assert.Len(t, row, 3)
		}
	}
	assert.Equal(t, 20, dto.Remaining)
}

func TestNewGameRejectsBadInput(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	for _, target := range []string{
		"/game?size=5&pool=4",
		"/game?size=0",
		"/game?boards=many",
	} {
		rec := serve(t, router, http.MethodPost, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := serve(t, router, http.MethodPost, "/game", "1,2\n\n1 2\n3\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFetch(t *testing.T) {
	router := newTestRouter(newFakeRepo())
	serve(t, router, http.MethodPost, "/game", sampleInput(t))

	rec := serve(t, router, http.MethodGet, "/game/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", decodeSession(t, rec).GameSessionId)

	assert.Equal(t, http.StatusNotFound, serve(t, router, http.MethodGet, "/game/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, router, http.MethodGet, "/game/abc", "").Code)
}

func TestDrawUntilFirstWinner(t *testing.T) {
	router := newTestRouter(newFakeRepo())
	serve(t, router, http.MethodPost, "/game", sampleInput(t))

	var dto GameSessionDTO
	for range 11 {
		rec := serve(t, router, http.MethodPost, "/game/1/draw", "")
		require.Equal(t, http.StatusOK, rec.Code)
		dto = decodeSession(t, rec)
	}
	assert.Empty(t, dto.Winners)

	dto = decodeSession(t, serve(t, router, http.MethodPost, "/game/1/draw", ""))
	assert.Equal(t, 24, dto.Drawn[len(dto.Drawn)-1])
	require.NotEmpty(t, dto.Winners)
	assert.Equal(t, WinDTO{Index: 2, Number: 24, Score: 4512}, dto.Winners[0])
	assert.True(t, dto.Won[2])
	assert.Nil(t, dto.FirstScore)
}

func TestFinish(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)
	serve(t, router, http.MethodPost, "/game", sampleInput(t))

	rec := serve(t, router, http.MethodPost, "/game/1/finish", "")
	require.Equal(t, http.StatusOK, rec.Code)

	dto := decodeSession(t, rec)
	assert.True(t, dto.Finished)
	require.NotNil(t, dto.FirstScore)
	require.NotNil(t, dto.LastScore)
	assert.Equal(t, 4512, *dto.FirstScore)
	assert.Equal(t, 1924, *dto.LastScore)
	assert.NotNil(t, dto.EndedAt)
	assert.Equal(t, []bool{true, true, true}, dto.Won)
	assert.Equal(t, 13, dto.Drawn[len(dto.Drawn)-1])

	rec = serve(t, router, http.MethodPost, "/game/1/draw", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	session, err := repo.FetchGameSession(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, session.Finished)
	assert.Equal(t, len(dto.Drawn), session.Drawn)
}

func TestHighscores(t *testing.T) {
	router := newTestRouter(newFakeRepo())
	serve(t, router, http.MethodPost, "/game", sampleInput(t))
	serve(t, router, http.MethodPost, "/game", sampleInput(t))
	serve(t, router, http.MethodPost, "/game/1/finish", "")

	rec := serve(t, router, http.MethodGet, "/highscores?size=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var highscores []repository.Highscore
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &highscores))
	require.Len(t, highscores, 1)
	assert.Equal(t, int64(1), highscores[0].GameSessionId)
	assert.Equal(t, 4512, highscores[0].FirstScore)

	rec = serve(t, router, http.MethodGet, "/highscores?size=3", "")
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/highscores?size=big", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseCreateGameDTO(t *testing.T) {
	dto, err := ParseCreateGameDTO(map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, CreateGameDTO{Size: 5, Boards: 3, Pool: 100}, dto)

	dto, err = ParseCreateGameDTO(map[string][]string{"size": {"4"}, "extra": {"x"}})
	require.NoError(t, err)
	assert.Equal(t, 4, dto.Size)

	_, err = ParseCreateGameDTO(map[string][]string{"size": {"11"}})
	assert.Error(t, err)
	_, err = ParseCreateGameDTO(map[string][]string{"boards": {"0"}})
	assert.Error(t, err)
	_, err = ParseCreateGameDTO(map[string][]string{"pool": {"5000"}})
	assert.Error(t, err)
}

func TestSessionUpdate(t *testing.T) {
	boards, draws, err := bingo.ParseGame(sampleInput(t))
	require.NoError(t, err)
	round := bingo.NewRound(boards, draws)
	session := &repository.GameSession{GameSessionId: 1}
	now := time.Date(2021, 12, 4, 5, 0, 0, 0, time.UTC)

	_, _, err = round.Draw()
	require.NoError(t, err)
	params, err := sessionUpdate(session, round, now)
	require.NoError(t, err)
	assert.Equal(t, 1, *params.Drawn)
	assert.False(t, *params.Finished)
	assert.Nil(t, params.EndedAt)
	assert.Nil(t, params.FirstScore)

	round.Finish()
	params, err = sessionUpdate(session, round, now)
	require.NoError(t, err)
	assert.True(t, *params.Finished)
	assert.Equal(t, now, *params.EndedAt)
	assert.Equal(t, 4512, *params.FirstScore)
	assert.Equal(t, 1924, *params.LastScore)

	decoded, err := bingo.DecodeRound(*params.State)
	require.NoError(t, err)
	assert.Equal(t, round.Drawn(), decoded.Drawn())

	session.EndedAt = &now
	params, err = sessionUpdate(session, round, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, params.EndedAt)
	assert.Nil(t, params.FirstScore)
}
