package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/bingo-server/internal/bingo"
)

type wsCommand string

const (
	wsNoop   wsCommand = "g"
	wsDraw   wsCommand = "d"
	wsFinish wsCommand = "f"
)

// applyCommands runs every newline-separated command in text against round
// and stops at the first one that fails.
func applyCommands(round *bingo.Round, text string) error {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		switch wsCommand(strings.TrimSpace(line)) {
		case wsNoop:
		case wsDraw:
			if round.Finished() {
				return ErrGameFinished
			}
			if _, _, err := round.Draw(); err != nil {
				return err
			}
		case wsFinish:
			round.Finish()
		default:
			return fmt.Errorf("unknown command %q", line)
		}
	}
	return nil
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	log := g.log(r)
	session, round, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log = log.WithField("game_session_id", session.GameSessionId)

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}
		log.Debugf("\t> %s", message)

		// a failed frame leaves the stored session untouched
		before := len(round.Drawn())
		if cmdErr := applyCommands(round, string(message)); cmdErr != nil {
			log.WithError(cmdErr).Debug("command rejected")
			round, err = bingo.DecodeRound(session.State)
			if err != nil {
				log.WithError(err).Error("db returned invalid game_session.state")
				return
			}
			if err := c.WriteJSON(wrapError(cmdErr)); err != nil {
				log.WithError(err).Error("unable to write json")
				return
			}
			continue
		}

		if len(round.Drawn()) != before {
			session, err = g.saveRound(r.Context(), session, round)
			if err != nil {
				log.WithError(err).Error("unable to update session in db")
				return
			}
		}

		if err := c.WriteJSON(NewGameSessionDTO(session, round)); err != nil {
			log.WithError(err).Error("unable to write json")
			return
		}
		log.Debug("\t< <session data>")
	}
}
