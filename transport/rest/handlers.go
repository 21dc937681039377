package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const maxMoveBodyBytes = 1 << 10

var errCellRequired = errors.New("cell is required")

type cellView struct {
	Index    int
	Mark     string
	Disabled bool
}

type pageView struct {
	Rows   [][]cellView
	Player string
	Winner string
	Draw   bool
	Status string
}

func newPageView(game *entity.Game) pageView {
	board := game.Board()
	outcome := game.Outcome()
	rows := make([][]cellView, 0, 3)

	for row := 0; row < 3; row++ {
		cells := make([]cellView, 0, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			cells = append(cells, cellView{
				Index:    index,
				Mark:     board[index].String(),
				Disabled: !board[index].IsEmpty() || outcome.IsFinished(),
			})
		}
		rows = append(rows, cells)
	}

	return pageView{
		Rows:   rows,
		Player: game.CurrentPlayer().String(),
		Winner: outcome.Winner().String(),
		Draw:   outcome.Kind() == entity.OutcomeDraw,
		Status: outcome.Status(),
	}
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleIndex")

	game, err := that.games.GetOrCreateGame(r.Context(), that.sessionID(w, r))
	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	if err = that.templates.ExecuteTemplate(&page, "index.tmpl", newPageView(game)); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = page.WriteTo(w); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMove")

	cell, err := strconv.Atoi(r.FormValue("cell"))
	if err != nil {
		http.Error(w, "invalid cell", http.StatusBadRequest)
		return
	}

	if _, err = that.games.MakeMove(r.Context(), that.sessionID(w, r), cell); err != nil {
		log.Error("failed to make move", "cell", cell, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleNewGame")

	if _, err := that.games.NewGame(r.Context(), that.sessionID(w, r)); err != nil {
		log.Error("failed to start new game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Server) handleAPIGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetOrCreateGame(r.Context(), that.sessionID(w, r))
	if err != nil {
		that.logger.Error("failed to get game", "method", "handleAPIGame", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleAPIMove(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMoveBodyBytes)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	if req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errCellRequired.Error()})
		return
	}

	game, err := that.games.MakeMove(r.Context(), that.sessionID(w, r), *req.Cell)
	if err != nil {
		that.logger.Error("failed to make move", "method", "handleAPIMove", "cell", *req.Cell, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleAPINewGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.NewGame(r.Context(), that.sessionID(w, r))
	if err != nil {
		that.logger.Error("failed to start new game", "method", "handleAPINewGame", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
