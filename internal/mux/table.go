package mux

import (
	"errors"
	"fmt"
	"net/http"

	"holdem-server/internal/util"
	"holdem-server/pkg/action"
	"holdem-server/pkg/room"
)

// maxAILevel is the strongest computer player
const maxAILevel = 3

type tableResponse struct {
	UUID  string       `json:"uuid"`
	Name  string       `json:"name"`
	Seats []*room.Seat `json:"seats,omitempty"`
}

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealers := m.pitBoss.Dealers()
		tables := make([]tableResponse, len(dealers))
		for i, dealer := range dealers {
			tables[i] = tableResponse{
				UUID: dealer.UUID,
				Name: dealer.Name(),
			}
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

// postTablePayload either lists every seat or asks for one person against computer players
type postTablePayload struct {
	Name       string       `json:"name"`
	Seats      []*room.Seat `json:"seats"`
	PlayerName string       `json:"playerName"`
	AICount    int          `json:"aiCount"`
	AILevel    int          `json:"aiLevel"`
}

func (m *Mux) seatsFromPayload(pp postTablePayload) ([]*room.Seat, error) {
	if len(pp.Seats) > 0 {
		for i, seat := range pp.Seats {
			if seat == nil {
				return nil, errors.New("seat cannot be empty")
			}

			if seat.PlayerID == 0 {
				seat.PlayerID = int64(i + 1)
			}

			if err := m.fillSeat(seat); err != nil {
				return nil, err
			}
		}

		return pp.Seats, nil
	}

	if pp.AICount < 1 || pp.AICount >= m.config.MaxSeats {
		return nil, fmt.Errorf("aiCount must be between 1 and %d", m.config.MaxSeats-1)
	}

	level := pp.AILevel
	if level == 0 {
		level = 1
	}

	if level < 0 || level > maxAILevel {
		return nil, fmt.Errorf("aiLevel must be between 1 and %d", maxAILevel)
	}

	name := pp.PlayerName
	if name == "" {
		name = "Player"
	}

	seats := []*room.Seat{{PlayerID: 1, Name: name, Chips: m.config.StartingChips}}
	for i := 1; i <= pp.AICount; i++ {
		seats = append(seats, &room.Seat{
			PlayerID: int64(i + 1),
			Name:     fmt.Sprintf("AI %d", i),
			Chips:    m.config.StartingChips,
			AILevel:  level,
		})
	}

	return seats, nil
}

// fillSeat checks the AI level and fills in the chips and name a seat left out
func (m *Mux) fillSeat(seat *room.Seat) error {
	if seat.AILevel < 0 || seat.AILevel > maxAILevel {
		return fmt.Errorf("aiLevel must be between 0 and %d", maxAILevel)
	}

	if seat.Chips == 0 {
		seat.Chips = m.config.StartingChips
	}

	if seat.Name == "" {
		if seat.AILevel > 0 {
			seat.Name = util.GetRandomName()
		} else {
			seat.Name = fmt.Sprintf("Player %d", seat.PlayerID)
		}
	}

	return nil
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		seats, err := m.seatsFromPayload(pp)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		dealer, err := m.pitBoss.OpenTable(room.TableConfig{
			Name:          pp.Name,
			Seats:         seats,
			Options:       m.config.TableOptions(),
			ActionTimeout: m.config.ActionTimeout,
		})
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusCreated, tableResponse{
			UUID:  dealer.UUID,
			Name:  dealer.Name(),
			Seats: seats,
		})
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		playerID, err := parsePlayerID(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		snap, err := dealer.Snapshot(r.Context(), playerID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}

func (m *Mux) deleteTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		if err := m.pitBoss.CloseTable(dealer.UUID); err != nil {
			writeGameError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type postActionPayload struct {
	PlayerID int64  `json:"playerId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount"`
}

func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		var pp postActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		act, err := action.FromString(pp.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		outcome, err := dealer.Submit(r.Context(), pp.PlayerID, act, pp.Amount)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, outcome)
	}
}

func (m *Mux) postTableUUIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		var seat room.Seat
		if !decodeRequest(w, r, &seat) {
			return
		}

		if seat.PlayerID <= 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("playerId must be a positive integer"))
			return
		}

		if err := m.fillSeat(&seat); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if err := dealer.AddSeat(r.Context(), &seat); err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, &seat)
	}
}
