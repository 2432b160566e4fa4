// custom query
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	GameSessionId int64     `json:"game_session_id" db:"game_session_id"`
	Username      *string   `json:"username" db:"username"`
	BoardSize     int       `json:"board_size" db:"board_size"`
	BoardCount    int       `json:"board_count" db:"board_count"`
	FirstScore    int       `json:"first_score" db:"first_score"`
	LastScore     *int      `json:"last_score" db:"last_score"`
	EndedAt       time.Time `json:"ended_at" db:"ended_at"`
}

type HighscoreFilter struct {
	Username  *string
	BoardSize *int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.BoardSize != nil {
		clauses = append(clauses, "board_size = @board_size")
		args["board_size"] = *f.BoardSize
	}
	return strings.Join(clauses, " AND "), args
}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_session_id,
		username,
		board_size,
		board_count,
		first_score,
		last_score,
		ended_at
	FROM game_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		finished = true
		AND first_score IS NOT NULL
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY first_score DESC, ended_at;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
