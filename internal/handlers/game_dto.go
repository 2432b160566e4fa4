package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/bingo-server/internal/bingo"
	"github.com/vancomm/bingo-server/internal/repository"
)

const (
	defaultBoardSize  = 5
	defaultBoardCount = 3
	defaultPool       = 100

	maxBoardSize  = 10
	maxBoardCount = 50
	maxPool       = 1000
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type CreateGameDTO struct {
	Size   int `schema:"size"`
	Boards int `schema:"boards"`
	Pool   int `schema:"pool"`
}

func ParseCreateGameDTO(src map[string][]string) (CreateGameDTO, error) {
	dto := CreateGameDTO{
		Size:   defaultBoardSize,
		Boards: defaultBoardCount,
		Pool:   defaultPool,
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.Size < 1 || dto.Size > maxBoardSize {
		return dto, fmt.Errorf("size must be between 1 and %d", maxBoardSize)
	}
	if dto.Boards < 1 || dto.Boards > maxBoardCount {
		return dto, fmt.Errorf("boards must be between 1 and %d", maxBoardCount)
	}
	if dto.Pool < dto.Size*dto.Size || dto.Pool > maxPool {
		return dto, fmt.Errorf(
			"pool must be between %d and %d", dto.Size*dto.Size, maxPool,
		)
	}
	return dto, nil
}

type HighscoresDTO struct {
	Username *string `schema:"username"`
	Size     *int    `schema:"size"`
}

func ParseHighscoresDTO(src map[string][]string) (HighscoresDTO, error) {
	var dto HighscoresDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type WinDTO struct {
	Index  int `json:"index"`
	Number int `json:"number"`
	Score  int `json:"score"`
}

func newWinDTO(w bingo.Win) WinDTO {
	return WinDTO{Index: w.Index, Number: w.Number, Score: w.Score()}
}

type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Boards        [][][]bingo.Cell `json:"boards"`
	Won           []bool           `json:"won"`
	Drawn         []int            `json:"drawn"`
	Remaining     int              `json:"remaining"`
	Winners       []WinDTO         `json:"winners"`
	FirstScore    *int             `json:"first_score,omitempty"`
	LastScore     *int             `json:"last_score,omitempty"`
	Finished      bool             `json:"finished"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(
	session *repository.GameSession, round *bingo.Round,
) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}

	boards := round.Boards()
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Boards:        make([][][]bingo.Cell, len(boards)),
		Won:           make([]bool, len(boards)),
		Drawn:         append([]int{}, round.Drawn()...),
		Remaining:     round.Remaining(),
		Winners:       []WinDTO{},
		FirstScore:    session.FirstScore,
		LastScore:     session.LastScore,
		Finished:      round.Finished(),
		StartedAt:     session.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
	for i, b := range boards {
		dto.Boards[i] = b.Cells()
		dto.Won[i] = round.Won(i)
	}
	for _, w := range round.Winners() {
		dto.Winners = append(dto.Winners, newWinDTO(w))
	}
	return dto
}
