package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/bingo-server/internal/handlers"
	"github.com/vancomm/bingo-server/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	repo := repository.New(a.db)

	auth := handlers.NewAuth(a.logger, a.db, a.cookies)
	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)

	game := handlers.NewGameHandler(a.logger, repo, a.ws, createRand())
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/draw", game.Draw)
	a.router.HandleFunc("POST /game/{id}/finish", game.Finish)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /highscores", game.Highscores)

	puzzles := handlers.NewPuzzleHandler(a.logger)
	a.router.HandleFunc("GET /solve", puzzles.List)
	a.router.HandleFunc("POST /solve/{puzzle}", puzzles.Solve)
}
