package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/bingo-server/internal/config"
	"github.com/vancomm/bingo-server/internal/middleware"
	"github.com/vancomm/bingo-server/internal/repository"
)

type Auth struct {
	logger  *logrus.Logger
	repo    *repository.Queries
	cookies *config.Cookies
}

func NewAuth(
	logger *logrus.Logger,
	db repository.DBTX,
	cookies *config.Cookies,
) *Auth {
	return &Auth{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	status := &Status{LoggedIn: false}
	claims, ok := middleware.PlayerClaims(r.Context())
	if ok {
		status = &Status{
			LoggedIn: true,
			Player:   &PlayerInfo{claims.PlayerId, claims.Username},
		}
		a.logger.Debug("refresh cookies")
		if err := a.cookies.Refresh(w, claims); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			a.logger.WithError(err).Error("unable to refresh cookies")
			return
		}
	}

	sendJSONOrLog(w, a.logger, status)
}

// bcrypt ignores everything past 72 bytes
const maxPasswordLength = 72

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
)

func parseCredentials(r *http.Request) (string, string, error) {
	if err := r.ParseForm(); err != nil {
		return "", "", ErrBadAuthBody
	}
	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	return username, password, nil
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	if len(password) > maxPasswordLength {
		sendError(w, a.logger, http.StatusBadRequest, ErrBadPasswordTooLong)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to hash password")
		return
	}

	player, err := a.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to insert player")
		return
	}

	a.logger.WithField("player_id", player.PlayerId).Info("registered player")

	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	if err := a.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to set auth cookies")
		return
	}

	sendStatusJSON(w, a.logger, http.StatusCreated, PlayerInfo{player.PlayerId, player.Username})
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	player, err := a.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to fetch player")
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if err != nil {
		sendError(w, a.logger, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	if err := a.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.WithError(err).Error("unable to set auth cookies")
		return
	}

	sendJSONOrLog(w, a.logger, PlayerInfo{player.PlayerId, player.Username})
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
