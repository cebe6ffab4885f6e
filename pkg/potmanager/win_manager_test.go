package potmanager

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
)

func compareInts(a, b int) int {
	return a - b
}

func TestNewWinManager(t *testing.T) {
	a := assert.New(t)

	wm := NewWinManager(compareInts)
	a.Empty(wm.GetSortedTiers())

	wm.AddParticipant(newTestParticipant(1, 100), 10)
	wm.AddParticipant(newTestParticipant(2, 100), 20)
	wm.AddParticipant(newTestParticipant(3, 100), 30)
	wm.AddParticipant(newTestParticipant(4, 100), 20)
	wm.AddParticipant(newTestParticipant(5, 100), 30)

	tiers := wm.GetSortedTiers()
	a.Equal("3-5|2-4|1", tiersToString(tiers))
}

func TestWinManager_handStrengths(t *testing.T) {
	a := assert.New(t)

	strengthOf := func(cards string) poker.HandStrength {
		return poker.NewHandAnalyzer(deck.CardsFromString(cards)).Strength()
	}

	wm := NewWinManager(poker.HandStrength.Compare)
	wm.AddParticipant(newTestParticipant(1, 100), strengthOf("14c,14d,9h,7s,2c"))
	wm.AddParticipant(newTestParticipant(2, 100), strengthOf("2s,3s,4d,5c,14h"))
	wm.AddParticipant(newTestParticipant(3, 100), strengthOf("14h,14s,9c,7d,2d"))
	wm.AddParticipant(newTestParticipant(4, 100), strengthOf("14h,14s,9c,7d,3d"))

	// suits never break a tie
	a.Equal("2|4|1-3", tiersToString(wm.GetSortedTiers()))
}

func tiersToString(tiers [][]Participant) string {
	s := make([]string, len(tiers))
	for i, participants := range tiers {
		ids := make([]string, len(participants))
		for j, p := range participants {
			ids[j] = strconv.FormatInt(p.ID(), 10)
		}

		s[i] = strings.Join(ids, "-")
	}

	return strings.Join(s, "|")
}
