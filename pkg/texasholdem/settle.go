package texasholdem

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/potmanager"
)

// settle pays out every pot and ends the hand
// A player left alone wins without showing; otherwise every player still in is evaluated.
func (g *Game) settle() error {
	survivors := make([]*Participant, 0, len(g.handOrder))
	for _, p := range g.handOrder {
		if !p.folded {
			survivors = append(survivors, p)
		}
	}

	if len(survivors) == 0 {
		return g.abortHand(ErrNoActiveSeats)
	}

	hands := make(map[int64]*HandResult)
	var tiers [][]potmanager.Participant
	if len(survivors) == 1 {
		tiers = [][]potmanager.Participant{{survivors[0]}}
	} else {
		wm := potmanager.NewWinManager(poker.HandStrength.Compare)
		for _, p := range survivors {
			strength, best := poker.BestHand(append(p.cards.Clone(), g.community...))
			hands[p.PlayerID] = &HandResult{
				Strength:    strength,
				Description: strength.String(),
				Cards:       deck.Hand(best),
			}

			p.reveal = true
			wm.AddParticipant(p, strength)
		}

		tiers = wm.GetSortedTiers()
	}

	pots := g.potManager.Pots()
	payouts, err := g.potManager.PayWinners(tiers)
	if err != nil {
		return g.abortHand(err)
	}

	if total := g.totalChips(); total != g.chipsAtStart {
		return g.abortHand(fmt.Errorf("expected %d chips at the table, found %d: %w", g.chipsAtStart, total, ErrChipMismatch))
	}

	winners := make([]int64, 0, len(tiers[0]))
	won := 0
	for _, pt := range tiers[0] {
		winners = append(winners, pt.ID())
		won += payouts[pt.ID()]
	}

	for _, p := range g.handOrder {
		p.winnings = payouts[p.PlayerID]
		switch {
		case p.winnings > 0:
			p.result = resultWon
		case p.folded:
			p.result = resultFolded
		default:
			p.result = resultLost
		}
	}

	g.settlement = &Settlement{
		HandNumber: g.handNumber,
		Winners:    winners,
		AmountEach: won / len(winners),
		Pots:       pots,
		Payouts:    payouts,
		Hands:      hands,
		Community:  g.community.Clone(),
	}

	g.handOver = true
	g.handOverAt = time.Now()

	g.logger.WithFields(logrus.Fields{
		"hand":    g.handNumber,
		"winners": winners,
		"pot":     pots.Total(),
	}).Debug("hand settled")
	g.sendLogs(g.settlementLogs(survivors))

	return nil
}

func (g *Game) settlementLogs(survivors []*Participant) []*playable.LogMessage {
	logs := make([]*playable.LogMessage, 0, len(survivors)+len(g.settlement.Payouts))
	if len(survivors) > 1 {
		for _, p := range survivors {
			hand := g.settlement.Hands[p.PlayerID]
			msg := playable.CardsLogMessage(p.cards.Clone(), "{} shows %s", hand.Description)
			msg.PlayerIDs = []int64{p.PlayerID}
			logs = append(logs, msg)
		}
	}

	for _, p := range g.handOrder {
		if amount := g.settlement.Payouts[p.PlayerID]; amount > 0 {
			logs = append(logs, playable.SimpleLogMessage(p.PlayerID, "{} won ${%d}", amount))
		}
	}

	return logs
}
