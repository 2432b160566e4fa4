package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/bingo-server/internal/bingo"
)

type GameSession struct {
	GameSessionId int64              `db:"game_session_id"`
	PlayerId      *int64             `db:"player_id"`
	BoardSize     int                `db:"board_size"`
	BoardCount    int                `db:"board_count"`
	DrawCount     int                `db:"draw_count"`
	Drawn         int                `db:"drawn"`
	Finished      bool               `db:"finished"`
	FirstScore    *int               `db:"first_score"`
	LastScore     *int               `db:"last_score"`
	State         []byte             `db:"state"`
	StartedAt     time.Time          `db:"started_at"`
	EndedAt       *time.Time         `db:"ended_at"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

type CreateGameSessionParams struct {
	PlayerId *int64
}

func boardSize(round *bingo.Round) int {
	if boards := round.Boards(); len(boards) > 0 {
		return boards[0].Size()
	}
	return 0
}

func (q *Queries) CreateGameSession(
	ctx context.Context, round *bingo.Round, params CreateGameSessionParams,
) (*GameSession, error) {
	state, err := round.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":   params.PlayerId,
		"board_size":  boardSize(round),
		"board_count": len(round.Boards()),
		"draw_count":  len(round.Draws()),
		"drawn":       len(round.Drawn()),
		"finished":    round.Finished(),
		"state":       state,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, board_size, board_count, draw_count, drawn, finished, state
		)
		VALUES (
			@player_id, @board_size, @board_count, @draw_count, @drawn, @finished, @state
		)
		RETURNING *`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q *Queries) FetchGameSession(ctx context.Context, gameSessionId int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Drawn      *int
	Finished   *bool
	FirstScore *int
	LastScore  *int
	EndedAt    *time.Time
	State      *[]byte
}

// SetClause lists only the columns with a value; updated_at is always bumped.
func (p UpdateGameSessionParams) SetClause() (string, pgx.NamedArgs) {
	parts := []string{"updated_at = now()"}
	args := pgx.NamedArgs{}

	if p.Drawn != nil {
		parts = append(parts, "drawn = @drawn")
		args["drawn"] = *p.Drawn
	}
	if p.Finished != nil {
		parts = append(parts, "finished = @finished")
		args["finished"] = *p.Finished
	}
	if p.FirstScore != nil {
		parts = append(parts, "first_score = @first_score")
		args["first_score"] = *p.FirstScore
	}
	if p.LastScore != nil {
		parts = append(parts, "last_score = @last_score")
		args["last_score"] = *p.LastScore
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q *Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}
