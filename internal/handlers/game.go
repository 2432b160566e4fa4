package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/bingo-server/internal/bingo"
	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/internal/middleware"
	"github.com/vancomm/bingo-server/internal/repository"
)

const maxBodyBytes = 1 << 20

var ErrGameFinished = errors.New("game is finished")

// GameRepository is the slice of repository.Queries the game handlers use.
type GameRepository interface {
	CreateGameSession(context.Context, *bingo.Round, repository.CreateGameSessionParams) (*repository.GameSession, error)
	FetchGameSession(context.Context, int64) (*repository.GameSession, error)
	UpdateGameSession(context.Context, int64, repository.UpdateGameSessionParams) (*repository.GameSession, error)
	GetHighscores(context.Context, repository.HighscoreFilter) ([]repository.Highscore, error)
}

type GameHandler struct {
	logger *logrus.Logger
	repo   GameRepository
	ws     *config.WebSocket

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGameHandler(
	logger *logrus.Logger,
	repo GameRepository,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger: logger,
		repo:   repo,
		ws:     ws,
		rnd:    rnd,
	}
}

func (g *GameHandler) log(r *http.Request) *logrus.Entry {
	return g.logger.WithField("request_id", middleware.RequestId(r.Context()))
}

func (g *GameHandler) generate(dto CreateGameDTO) (*bingo.Round, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	boards, err := bingo.GenerateBoards(g.rnd, dto.Size, dto.Boards, dto.Pool)
	if err != nil {
		return nil, err
	}
	return bingo.NewRound(boards, bingo.ShuffledDraws(g.rnd, dto.Pool)), nil
}

// newRound builds a round from the request body when one is present and
// generates it from the query parameters otherwise.
func (g *GameHandler) newRound(r *http.Request) (*bingo.Round, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		boards, draws, err := bingo.ParseGame(text)
		if err != nil {
			return nil, err
		}
		return bingo.NewRound(boards, draws), nil
	}

	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return g.generate(dto)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	log := g.log(r)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	round, err := g.newRound(r)
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	var params repository.CreateGameSessionParams
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		params.PlayerId = &claims.PlayerId
	}

	session, err := g.repo.CreateGameSession(r.Context(), round, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to create game session")
		return
	}

	log.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionId,
		"boards":          session.BoardCount,
		"size":            session.BoardSize,
	}).Debug("created game session")

	sendStatusJSON(w, log, http.StatusCreated, NewGameSessionDTO(session, round))
}

// loadSession answers the request itself and returns ok == false when the
// session cannot be loaded.
func (g *GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *bingo.Round, bool) {
	log := g.log(r)
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, log, http.StatusBadRequest, fmt.Errorf("invalid game session id"))
		return nil, nil, false
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to fetch session from db")
		return nil, nil, false
	}

	round, err := bingo.DecodeRound(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("db returned invalid game_session.state")
		return nil, nil, false
	}

	return session, round, true
}

// sessionUpdate describes the columns that changed after round advanced.
// Scores and ended_at are written once, when the round finishes.
func sessionUpdate(
	session *repository.GameSession, round *bingo.Round, now time.Time,
) (repository.UpdateGameSessionParams, error) {
	state, err := round.Bytes()
	if err != nil {
		return repository.UpdateGameSessionParams{}, err
	}
	drawn := len(round.Drawn())
	finished := round.Finished()
	params := repository.UpdateGameSessionParams{
		Drawn:    &drawn,
		Finished: &finished,
		State:    &state,
	}
	if finished && session.EndedAt == nil {
		params.EndedAt = &now
		if first, ok := round.First(); ok {
			score := first.Score()
			params.FirstScore = &score
		}
		if last, ok := round.Last(); ok {
			score := last.Score()
			params.LastScore = &score
		}
	}
	return params, nil
}

func (g *GameHandler) saveRound(
	ctx context.Context, session *repository.GameSession, round *bingo.Round,
) (*repository.GameSession, error) {
	params, err := sessionUpdate(session, round, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("unable to serialize game state: %w", err)
	}
	return g.repo.UpdateGameSession(ctx, session.GameSessionId, params)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, round, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log(r), NewGameSessionDTO(session, round))
}

func (g *GameHandler) Draw(w http.ResponseWriter, r *http.Request) {
	log := g.log(r)
	session, round, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	if round.Finished() {
		sendError(w, log, http.StatusConflict, ErrGameFinished)
		return
	}

	number, wins, err := round.Draw()
	if err != nil {
		sendError(w, log, http.StatusConflict, err)
		return
	}
	log.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionId,
		"number":          number,
		"wins":            len(wins),
	}).Debug("drew number")

	session, err = g.saveRound(r.Context(), session, round)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, log, NewGameSessionDTO(session, round))
}

func (g *GameHandler) Finish(w http.ResponseWriter, r *http.Request) {
	log := g.log(r)
	session, round, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	round.Finish()

	session, err := g.saveRound(r.Context(), session, round)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to update session in db")
		return
	}

	sendJSONOrLog(w, log, NewGameSessionDTO(session, round))
}

func (g *GameHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	log := g.log(r)
	dto, err := ParseHighscoresDTO(r.URL.Query())
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	highscores, err := g.repo.GetHighscores(r.Context(), repository.HighscoreFilter{
		Username:  dto.Username,
		BoardSize: dto.Size,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to fetch highscores")
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	sendJSONOrLog(w, log, highscores)
}
