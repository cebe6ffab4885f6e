package mux

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/playable"
)

type wsResponse struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(resp wsResponse) bool) wsResponse {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
	for {
		var resp wsResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatal(err)
		}

		if match(resp) {
			return resp
		}
	}
}

func TestGetTableUUIDWS(t *testing.T) {
	a := assert.New(t)
	ts := setupServer(t)

	tbl := openTable(t, ts, postTablePayload{AICount: 1, AILevel: 3})

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/table/" + tbl.UUID + "/ws?playerId=1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if !a.NoError(err) {
		return
	}
	defer conn.Close()

	game := readUntil(t, conn, func(resp wsResponse) bool {
		return resp.Key == "game"
	})
	a.Equal("texas-hold-em", game.Value)

	var snap snapshotResponse
	a.NoError(json.Unmarshal(game.Data, &snap))
	if a.NotNil(snap.Viewer) {
		a.Len(snap.Viewer.Cards, 2)
	}

	a.NoError(conn.WriteJSON(playable.PayloadIn{Action: "getState", Context: "state"}))
	resp := readUntil(t, conn, func(resp wsResponse) bool {
		return resp.Context == "state"
	})
	a.Equal("game", resp.Key)

	// the settlement is broadcast before the reply to the fold
	var settlement *wsResponse
	a.NoError(conn.WriteJSON(playable.PayloadIn{Action: "fold", Context: "fold"}))
	resp = readUntil(t, conn, func(resp wsResponse) bool {
		if resp.Key == "settlement" {
			settlement = &resp
		}

		return resp.Context == "fold"
	})
	a.Equal("status", resp.Key)
	a.Equal("OK", resp.Value)

	if a.NotNil(settlement) {
		var result struct {
			Winners []int64 `json:"winners"`
		}
		a.NoError(json.Unmarshal(settlement.Data, &result))
		a.Equal([]int64{2}, result.Winners)
	}
}
