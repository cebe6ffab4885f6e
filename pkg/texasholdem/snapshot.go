package texasholdem

import (
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/potmanager"
)

// SeatView is one seat as a particular viewer is allowed to see it
type SeatView struct {
	PlayerID   int64      `json:"playerId"`
	Name       string     `json:"name"`
	Seat       int        `json:"seat"`
	Controller Controller `json:"controller"`
	Chips      int        `json:"chips"`
	Bet        int        `json:"bet"`
	Cards      deck.Hand  `json:"cards"`
	Folded     bool       `json:"folded"`
	AllIn      bool       `json:"allIn"`
	SittingOut bool       `json:"sittingOut"`
	IsDealer   bool       `json:"isDealer"`
	IsTurn     bool       `json:"isTurn"`
	Hand       string     `json:"hand,omitempty"`
	Result     string     `json:"result,omitempty"`
	Winnings   int        `json:"winnings,omitempty"`
}

// ViewerState is what only the viewer knows about their own seat
type ViewerState struct {
	PlayerID     int64               `json:"playerId"`
	Cards        deck.Hand           `json:"cards"`
	Strength     *poker.HandStrength `json:"strength,omitempty"`
	LegalActions []action.Action     `json:"legalActions"`
	AmountOwed   int                 `json:"amountOwed"`
	MinRaise     int                 `json:"minRaise"`
}

// Snapshot is the state of the table from one viewer's seat
type Snapshot struct {
	Name           string          `json:"name"`
	HandNumber     int             `json:"handNumber"`
	Phase          Phase           `json:"phase"`
	Community      deck.Hand       `json:"community"`
	Pot            int             `json:"pot"`
	Pots           potmanager.Pots `json:"pots"`
	CurrentBet     int             `json:"currentBet"`
	SmallBlind     int             `json:"smallBlind"`
	BigBlind       int             `json:"bigBlind"`
	DealerPosition int             `json:"dealerPosition"`
	// Turn is the player on the clock, 0 when nobody is
	Turn       int64        `json:"turn"`
	Seats      []*SeatView  `json:"seats"`
	Viewer     *ViewerState `json:"viewer,omitempty"`
	LastAction *LastAction  `json:"lastAction,omitempty"`
	Settlement *Settlement  `json:"settlement,omitempty"`
	HandOver   bool         `json:"handOver"`
	Paused     bool         `json:"paused"`
	Error      string       `json:"error,omitempty"`
}

// Snapshot returns the table as viewerID sees it
// Other players' hole cards are face down unless they were shown at showdown. An unknown
// viewer sees the table as a spectator. Taking a snapshot never changes the game.
func (g *Game) Snapshot(viewerID int64) *Snapshot {
	snap := &Snapshot{
		Name:           g.Name(),
		HandNumber:     g.handNumber,
		Phase:          g.phase,
		Community:      g.community.Clone(),
		Pot:            g.Pot(),
		Pots:           potmanager.Pots{},
		CurrentBet:     g.CurrentBet(),
		SmallBlind:     g.options.SmallBlind,
		BigBlind:       g.options.BigBlind,
		DealerPosition: g.dealerIndex,
		Seats:          make([]*SeatView, 0, len(g.seatOrder)),
		LastAction:     g.lastAction,
		Settlement:     g.settlement,
		HandOver:       g.handOver,
		Paused:         g.paused,
	}

	if snap.Community == nil {
		snap.Community = deck.Hand{}
	}

	if g.potManager != nil && !g.handOver {
		snap.Pots = g.potManager.Pots()
	}

	if g.invariantErr != nil {
		snap.Error = g.invariantErr.Error()
	}

	current := g.CurrentTurn()
	if current != nil {
		snap.Turn = current.PlayerID
	}

	for i, p := range g.seatOrder {
		seat := &SeatView{
			PlayerID:   p.PlayerID,
			Name:       p.name,
			Seat:       i,
			Controller: p.controller,
			Chips:      p.chips,
			Bet:        p.bet,
			Folded:     p.folded,
			AllIn:      p.IsAllIn(),
			SittingOut: !p.inHand,
			IsDealer:   i == g.dealerIndex,
			IsTurn:     p == current,
			Result:     string(p.result),
			Winnings:   p.winnings,
		}

		switch {
		case p.PlayerID == viewerID || p.reveal:
			seat.Cards = p.cards.Clone()
			if len(seat.Cards) > 0 {
				seat.Hand = p.strength(g.community).String()
			}
		case p.inHand && !p.folded:
			seat.Cards = p.cards.Masked()
		}

		snap.Seats = append(snap.Seats, seat)
	}

	if p, ok := g.participants[viewerID]; ok {
		snap.Viewer = &ViewerState{
			PlayerID:     p.PlayerID,
			Cards:        p.cards.Clone(),
			LegalActions: g.LegalActions(viewerID),
			AmountOwed:   g.AmountOwed(viewerID),
			MinRaise:     g.MinRaise(),
		}

		if len(p.cards) > 0 {
			strength := p.strength(g.community)
			snap.Viewer.Strength = &strength
		}

		if snap.Viewer.LegalActions == nil {
			snap.Viewer.LegalActions = []action.Action{}
		}
	}

	return snap
}
