package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessbot-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Game puts one Session behind a mutex so that several network clients can
// share it, and pushes the resulting state to every connected client.
type Game struct {
	ID          string
	mu          sync.Mutex
	session     *Session
	players     Players
	lastResult  SelectionResult
	connections *GameConnections
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// GameState is the client view of a game.
type GameState struct {
	Board          Board           `json:"board"`
	ToMove         Color           `json:"toMove"`
	SelectedSquare *Position       `json:"selectedSquare"`
	HistoryLength  int             `json:"historyLength"`
	LastResult     SelectionResult `json:"lastResult"`
	Players        Players         `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		session:     NewSession(),
		players:     newPlayers(),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newPlayers() Players {
	return Players{
		White: ClientPlayer{Color: PlayerColorWhite},
		Black: ClientPlayer{Color: PlayerColorBlack},
	}
}

// AddPlayer seats the player on the first free side. The same player may
// take both seats for a hot-seat game.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	log.Debugf("adding player %s to game %s", playerID, g.ID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.players.White.ID == "" {
		g.players.White.ID = playerID
		return PlayerColorWhite, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black.ID = playerID
		return PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) state() GameState {
	st := GameState{
		Board:         g.session.Board(),
		ToMove:        g.session.CurrentTurn(),
		HistoryLength: g.session.HistoryLen(),
		LastResult:    g.lastResult,
		Players:       g.players,
	}
	if sel, ok := g.session.Selection(); ok {
		st.SelectedSquare = &sel
	}
	return st
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	return playerID != "" && (g.players.White.ID == playerID || g.players.Black.ID == playerID)
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

// canAct reports whether the player holds the seat of the side to move.
func (g *Game) canAct(playerID string) error {
	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	seat := g.players.White
	if g.session.CurrentTurn() == Black {
		seat = g.players.Black
	}
	if seat.ID != playerID {
		return ErrNotYourTurn
	}
	return nil
}

// SelectSquare forwards a square click from the player holding the side to move.
func (g *Game) SelectSquare(playerID string, square Position) (SelectionResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.canAct(playerID); err != nil {
		return NoOp, err
	}
	res, err := g.session.SelectSquare(square.Row, square.Col)
	if err != nil {
		return NoOp, err
	}
	log.Debugf("game %s: %s clicked %s: %s", g.ID, playerID, square, res)
	g.lastResult = res
	g.publish()
	return res, nil
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.canAct(playerID); err != nil {
		return err
	}
	if err := g.session.Move(move.From, move.To); err != nil {
		if errors.Is(err, ErrIllegalMove) {
			g.lastResult = MoveRejected
			g.publish()
		}
		return err
	}
	log.Debugf("game %s: %s played %s-%s", g.ID, playerID, move.From, move.To)
	g.lastResult = MoveApplied
	g.publish()
	return nil
}

// Undo takes back the last move. Either seated player may ask for it.
func (g *Game) Undo(playerID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return false, ErrNotInGame
	}
	if !g.session.Undo() {
		return false, nil
	}
	log.Debugf("game %s: %s undid a move", g.ID, playerID)
	g.lastResult = NoOp
	g.publish()
	return true, nil
}

func (g *Game) NewGame(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return ErrNotInGame
	}
	g.session.NewGame()
	g.lastResult = NoOp
	g.publish()
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debugf("registering connection %s for player %s", connID, playerID)

	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and turn the new one away.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	g.mu.Lock()
	g.publish()
	g.mu.Unlock()
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only drop the entry if it still belongs to this connection.
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("unregistering connection %p for player %s", conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

// publish sends the current state to all connections. g.mu must be held,
// which keeps clients receiving states in the order they were produced.
func (g *Game) publish() {
	g.broadcastState(g.state())
}

func (g *Game) broadcastState(st GameState) {
	payload, err := json.Marshal(st)
	if err != nil {
		log.Errorf("failed to marshal state of game %s: %v", g.ID, err)
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: payload}

	// Writes happen under the lock: a websocket connection allows one writer at a time.
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}

// WriteError sends an error message on conn, serialized with broadcasts.
func (g *Game) WriteError(conn *websocket.Conn, cause error) {
	payload, _ := json.Marshal(cause.Error())
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); err != nil {
		log.Warnf("failed to send error: %v", err)
	}
}
