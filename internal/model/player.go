package model

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID    string      `json:"id"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)
