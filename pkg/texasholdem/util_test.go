package texasholdem

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
)

type testPlayer struct {
	id         int64
	tableStake int
	aiLevel    int
}

func (t *testPlayer) GetPlayerID() int64 {
	return t.id
}

func (t *testPlayer) GetName() string {
	return "player"
}

func (t *testPlayer) GetTableStake() int {
	return t.tableStake
}

func (t *testPlayer) GetAILevel() int {
	return t.aiLevel
}

// unshuffled leaves the deck in the order it was built
type unshuffled struct{}

func (unshuffled) Intn(n int) int {
	return n - 1
}

func setupPlayers(tableStakes ...int) []playable.Player {
	p := make([]playable.Player, len(tableStakes))
	for i, ts := range tableStakes {
		p[i] = &testPlayer{
			id:         int64(i + 1),
			tableStake: ts,
		}
	}

	return p
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.NextHandDelay = 0
	return opts
}

func setupNewGame(opts Options, tableStakes ...int) *Game {
	game, err := NewGame(logrus.StandardLogger(), setupPlayers(tableStakes...), opts, unshuffled{})
	if err != nil {
		panic(err)
	}

	return game
}

// rig swaps cards between the deck and the players so the hand plays out with known cards
// Players not listed keep receiving cards from what is left over.
func rig(t *testing.T, g *Game, holes map[int64]string, board string) {
	t.Helper()

	used := make(map[deck.Card]bool)
	for _, s := range holes {
		for _, card := range deck.CardsFromString(s) {
			used[card] = true
		}
	}

	boardCards := deck.CardsFromString(board)
	for _, card := range boardCards {
		used[card] = true
	}

	rest := make([]deck.Card, 0, deck.Size)
	for _, card := range deck.New().Cards {
		if !used[card] && !g.community.HasCard(card) {
			rest = append(rest, card)
		}
	}

	for _, p := range g.handOrder {
		if s, ok := holes[p.PlayerID]; ok {
			p.cards = deck.CardsFromString(s)
			continue
		}

		p.cards = deck.Hand{rest[0], rest[1]}
		rest = rest[2:]
	}

	g.deck.Cards = append(boardCards, rest...)
	if !assert.NoError(t, g.verifyCards()) {
		t.FailNow()
	}
}

func assertAction(t *testing.T, game *Game, playerID int64, act action.Action, msgAndArgs ...interface{}) *Outcome {
	t.Helper()
	return assertActionAndAmount(t, game, playerID, act, 0, msgAndArgs...)
}

func assertActionAndAmount(t *testing.T, game *Game, playerID int64, act action.Action, amount int, msgAndArgs ...interface{}) *Outcome {
	t.Helper()
	outcome, err := game.Action(playerID, act, amount)
	assert.NoError(t, err, msgAndArgs...)
	assert.NotNil(t, outcome, msgAndArgs...)
	return outcome
}

func assertActionFailed(t *testing.T, game *Game, playerID int64, act action.Action, amount int, expectedErr error, msgAndArgs ...interface{}) {
	t.Helper()
	outcome, err := game.Action(playerID, act, amount)
	assert.ErrorIs(t, err, expectedErr, msgAndArgs...)
	assert.Nil(t, outcome, msgAndArgs...)
}

func assertTurn(t *testing.T, game *Game, playerID int64, msgAndArgs ...interface{}) {
	t.Helper()
	turn := game.CurrentTurn()
	if assert.NotNil(t, turn, msgAndArgs...) {
		assert.Equal(t, playerID, turn.PlayerID, msgAndArgs...)
	}
}

// checkDown checks every remaining street until the hand is over
func checkDown(t *testing.T, game *Game) {
	t.Helper()
	for i := 0; !game.IsHandOver() && i < 100; i++ {
		turn := game.CurrentTurn()
		if !assert.NotNil(t, turn) {
			return
		}

		assertAction(t, game, turn.PlayerID, action.Check)
	}
}

func expireHand(game *Game) {
	game.handOverAt = time.Now().Add(-time.Hour)
}

func drainLogs(game *Game) []*playable.LogMessage {
	var logs []*playable.LogMessage
	for {
		select {
		case batch := <-game.LogChan():
			logs = append(logs, batch...)
		default:
			return logs
		}
	}
}
