package model

// WSMove is a from/to move sent by a client.
type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// SquareClick is a single square click sent by a client.
type SquareClick struct {
	Square Position `json:"square"`
}

// MatchFoundEvent tells a queued player which game and seat they got.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
