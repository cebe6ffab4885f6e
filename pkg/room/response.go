package room

import (
	"holdem-server/pkg/playable"
	"holdem-server/pkg/texasholdem"
)

// gameKey identifies the game in a "game" response
const gameKey = "texas-hold-em"

type clientStatePlayer struct {
	PlayerID    int64                  `json:"playerId"`
	Name        string                 `json:"name"`
	Controller  texasholdem.Controller `json:"controller"`
	IsConnected bool                   `json:"isConnected"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
