package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/bingo-server/internal/middleware"
	"github.com/vancomm/bingo-server/internal/puzzle"
)

type PuzzleHandler struct {
	logger *logrus.Logger
}

func NewPuzzleHandler(logger *logrus.Logger) *PuzzleHandler {
	return &PuzzleHandler{logger: logger}
}

func (p PuzzleHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, p.logger, puzzle.Names())
}

// Solve answers with 404 for unknown puzzles, 422 when the input parses but
// has no winner and 400 for any other input error.
func (p PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	log := p.logger.WithField("request_id", middleware.RequestId(r.Context()))
	name := r.PathValue("puzzle")

	solver, err := puzzle.Lookup(name)
	if err != nil {
		sendError(w, log, http.StatusNotFound, err)
		return
	}

	input, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	answer, err := solver.Solve(string(input))
	if errors.Is(err, puzzle.ErrNoWinner) {
		sendError(w, log, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		log.WithError(err).WithField("puzzle", name).Debug("unable to solve")
		sendError(w, log, http.StatusBadRequest, err)
		return
	}

	sendJSONOrLog(w, log, answer)
}
