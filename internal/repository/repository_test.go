package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHighscoreFilterWhereClause(t *testing.T) {
	clause, args := HighscoreFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	username, size := "alice", 5
	clause, args = HighscoreFilter{Username: &username, BoardSize: &size}.WhereClause()
	assert.Equal(t, "username = @username AND board_size = @board_size", clause)
	assert.Equal(t, "alice", args["username"])
	assert.Equal(t, 5, args["board_size"])
}

func TestUpdateGameSessionParamsSetClause(t *testing.T) {
	clause, args := UpdateGameSessionParams{}.SetClause()
	assert.Equal(t, "updated_at = now()", clause)
	assert.Empty(t, args)

	drawn, finished, score := 12, true, 4512
	ended := time.Date(2024, 12, 4, 0, 0, 0, 0, time.UTC)
	state := []byte{1, 2, 3}
	clause, args = UpdateGameSessionParams{
		Drawn:      &drawn,
		Finished:   &finished,
		FirstScore: &score,
		EndedAt:    &ended,
		State:      &state,
	}.SetClause()
	assert.Equal(t,
		"updated_at = now(), drawn = @drawn, finished = @finished, "+
			"first_score = @first_score, ended_at = @ended_at, state = @state",
		clause,
	)
	assert.Equal(t, 12, args["drawn"])
	assert.Equal(t, true, args["finished"])
	assert.Equal(t, 4512, args["first_score"])
	assert.Equal(t, ended, args["ended_at"])
	assert.Equal(t, state, args["state"])
	assert.NotContains(t, args, "last_score")
}
