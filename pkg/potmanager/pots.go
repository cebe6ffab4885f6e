package potmanager

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Pot is one layer of the chips in play and who can win it
type Pot struct {
	Amount   int
	Eligible []Participant
}

type potJSON struct {
	Amount   int     `json:"amount"`
	Eligible []int64 `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	ids := make([]int64, len(p.Eligible))
	for i, pt := range p.Eligible {
		ids[i] = pt.ID()
	}

	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: ids,
	})
}

// IsEligible returns true if the participant can win the pot
func (p Pot) IsEligible(pt Participant) bool {
	for _, e := range p.Eligible {
		if e.ID() == pt.ID() {
			return true
		}
	}

	return false
}

// Pots is a collection of pots, the main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}

// Pots returns the main pot followed by any side pots
// A new layer starts at every all-in level. An all-in participant can only win the layers
// they covered. Chips in a layer nobody left can win are folded into the layer below.
func (p *PotManager) Pots() Pots {
	levels := make(map[int]bool)
	top := 0
	for _, pip := range p.tableOrder {
		if pip.committed > top {
			top = pip.committed
		}

		if pip.state == AllIn && pip.committed > 0 {
			levels[pip.committed] = true
		}
	}

	if top == 0 {
		return Pots{}
	}

	levels[top] = true

	amounts := make([]int, 0, len(levels))
	for amount := range levels {
		amounts = append(amounts, amount)
	}
	sort.Ints(amounts)

	pots := make(Pots, 0, len(amounts))
	prevLevel := 0
	for _, level := range amounts {
		pot := &Pot{}
		for _, pip := range p.tableOrder {
			contributed := pip.committed
			if contributed > level {
				contributed = level
			}

			if contributed > prevLevel {
				pot.Amount += contributed - prevLevel
			}

			if pip.isEligibleFor(level) {
				pot.Eligible = append(pot.Eligible, pip.Participant)
			}
		}

		prevLevel = level

		if len(pot.Eligible) == 0 && len(pots) > 0 {
			pots[len(pots)-1].Amount += pot.Amount
			continue
		}

		pots = append(pots, pot)
	}

	return pots
}

// PayWinners will adjust balance for the winners and return the payouts by participant ID
// winners is ordered best first, each tier holding the participants who tie. Every pot goes to
// the best tier with a participant eligible for it. A split that does not divide evenly gives
// the odd chips to the winner closest to the left of the dealer.
func (p *PotManager) PayWinners(winners [][]Participant) (map[int64]int, error) {
	if p.isGameOver {
		return nil, ErrGameOver
	}

	pots := p.Pots()
	shares := make([][]*ParticipantInPot, len(pots))
	for i, pot := range pots {
		for _, tier := range winners {
			for _, winner := range tier {
				pip, ok := p.participants[winner.ID()]
				if !ok {
					return nil, fmt.Errorf("winner %d: %w", winner.ID(), ErrParticipantNotFound)
				}

				if pot.IsEligible(winner) {
					shares[i] = append(shares[i], pip)
				}
			}

			if len(shares[i]) > 0 {
				break
			}
		}

		if len(shares[i]) == 0 {
			return nil, errors.New("no winner is eligible for the pot")
		}

		sort.Sort(sortByTableIndex(shares[i]))
	}

	payouts := make(map[int64]int)
	for i, pot := range pots {
		split := pot.Amount / len(shares[i])
		remainder := pot.Amount % len(shares[i])

		for j, pip := range shares[i] {
			amount := split
			if j == 0 {
				amount += remainder
			}

			pip.Participant.AdjustBalance(amount)
			payouts[pip.ID()] += amount
		}
	}

	p.clearCommitted()
	p.EndGame()

	return payouts, nil
}

// Refund returns every participant's chips for the hand, i.e., when a hand is aborted
func (p *PotManager) Refund() map[int64]int {
	refunds := make(map[int64]int)
	for _, pip := range p.tableOrder {
		if pip.committed == 0 {
			continue
		}

		pip.Participant.AdjustBalance(pip.committed)
		refunds[pip.ID()] = pip.committed
	}

	p.clearCommitted()
	p.EndGame()

	return refunds
}

func (p *PotManager) clearCommitted() {
	for _, pip := range p.tableOrder {
		pip.committed = 0
		pip.reset()
	}

	p.currentBet = 0
}

type sortByTableIndex []*ParticipantInPot

func (s sortByTableIndex) Len() int {
	return len(s)
}

func (s sortByTableIndex) Less(i, j int) bool {
	return s[i].tableIndex < s[j].tableIndex
}

func (s sortByTableIndex) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
