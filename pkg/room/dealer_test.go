package room

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/action"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/texasholdem"
)

func testTableConfig(seats ...*Seat) TableConfig {
	opts := texasholdem.DefaultOptions()
	opts.NextHandDelay = 0

	return TableConfig{
		Name:         "test table",
		Seats:        seats,
		Options:      opts,
		TickInterval: 5 * time.Millisecond,
		Generator:    rand.New(rand.NewSource(1)),
	}
}

func humans(n int) []*Seat {
	seats := make([]*Seat, n)
	for i := range seats {
		seats[i] = &Seat{PlayerID: int64(i + 1), Name: "player", Chips: 1000}
	}

	return seats
}

func startDealer(t *testing.T, cfg TableConfig) *Dealer {
	t.Helper()

	d, err := NewDealer("test-uuid", cfg)
	if err != nil {
		t.Fatal(err)
	}

	d.StartShift()
	t.Cleanup(d.EndShift)

	return d
}

func snapshot(t *testing.T, d *Dealer, playerID int64) *texasholdem.Snapshot {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	snap, err := d.Snapshot(ctx, playerID)
	if err != nil {
		t.Fatal(err)
	}

	return snap
}

func waitForHand(t *testing.T, d *Dealer, handNumber int) {
	t.Helper()

	assert.Eventually(t, func() bool {
		return snapshot(t, d, 0).HandNumber >= handNumber
	}, 2*time.Second, 5*time.Millisecond)
}

// nextMessage returns the next message sent to the client with the key
func nextMessage(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if resp, ok := msg.(*playable.Response); ok && resp.Key == key {
				return resp
			}
		case <-timeout:
			t.Fatalf("did not receive a %q message", key)
			return nil
		}
	}
}

// replyTo returns the response to the client's message with the context
func replyTo(t *testing.T, c *Client, ctx string) *playable.Response {
	t.Helper()

	timeout := time.After(time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if resp, ok := msg.(*playable.Response); ok && resp.Context == ctx {
				return resp
			}
		case <-timeout:
			t.Fatalf("did not receive a reply to %q", ctx)
			return nil
		}
	}
}

func tableChips(snap *texasholdem.Snapshot) int {
	chips := 0
	for _, seat := range snap.Seats {
		chips += seat.Chips
	}

	if !snap.HandOver {
		chips += snap.Pot
	}

	return chips
}

func TestNewDealer(t *testing.T) {
	a := assert.New(t)

	_, err := NewDealer("uuid", testTableConfig(humans(1)...))
	a.ErrorIs(err, texasholdem.ErrInsufficientPlayers)

	_, err = NewDealer("uuid", testTableConfig(&Seat{PlayerID: 1, Chips: 1000}, &Seat{PlayerID: 2}))
	a.EqualError(err, "player 2 must sit down with chips")

	cfg := testTableConfig(humans(2)...)
	cfg.ActionTimeout = -time.Second
	_, err = NewDealer("uuid", cfg)
	a.EqualError(err, "action timeout must not be negative")

	cfg = testTableConfig(humans(2)...)
	cfg.Name = ""
	d, err := NewDealer("uuid", cfg)
	a.NoError(err)
	a.Equal("No-Limit Texas Hold'em (${50}/${100})", d.Name())
	a.Equal(5*time.Millisecond, d.tickInterval)

	cfg.ActionTimeout = time.Millisecond
	d, err = NewDealer("uuid", cfg)
	a.NoError(err)
	a.Equal(time.Millisecond, d.tickInterval)
}

func TestDealer_AddClient(t *testing.T) {
	d, err := NewDealer("uuid", testTableConfig(humans(2)...))
	if !assert.NoError(t, err) {
		return
	}

	c := NewClient(nil, 1, "uuid")
	c2 := NewClient(nil, 2, "uuid")

	d.AddClient(c)
	d.AddClient(c2)
	assert.Len(t, d.Clients(), 2)
	assert.Equal(t, d, c.dealer)

	assert.False(t, d.RemoveClient(c))
	assert.True(t, d.RemoveClient(c2))
	assert.Len(t, d.Clients(), 0)
}

func TestDealer_Submit(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))

	snap := snapshot(t, d, 1)
	a.Equal(1, snap.HandNumber)
	a.Equal(texasholdem.PreFlop, snap.Phase)
	if !a.NotZero(snap.Turn) {
		return
	}

	waiting := int64(1)
	if snap.Turn == 1 {
		waiting = 2
	}

	ctx := context.Background()
	_, err := d.Submit(ctx, waiting, action.Call, 0)
	a.ErrorIs(err, texasholdem.ErrNotYourTurn)

	outcome, err := d.Submit(ctx, snap.Turn, action.Fold, 0)
	a.NoError(err)
	if a.NotNil(outcome) && a.NotNil(outcome.Settlement) {
		a.Equal([]int64{waiting}, outcome.Settlement.Winners)
	}

	waitForHand(t, d, 2)
}

func TestDealer_AddSeat(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))
	ctx := context.Background()

	a.NoError(d.AddSeat(ctx, &Seat{PlayerID: 3, Name: "robot", Chips: 500, AILevel: 1}))
	snap := snapshot(t, d, 0)
	if a.Len(snap.Seats, 3) {
		a.Equal("robot", snap.Seats[2].Name)
	}

	err := d.AddSeat(ctx, &Seat{PlayerID: 3, Chips: 500})
	a.True(texasholdem.IsUserError(err))
	a.EqualError(err, "player 3 is seated twice")

	a.EqualError(d.AddSeat(ctx, &Seat{PlayerID: 4}), "player 4 must sit down with chips")
	a.EqualError(d.AddSeat(ctx, nil), "seat cannot be empty")

	d.EndShift()
	a.ErrorIs(d.AddSeat(ctx, &Seat{PlayerID: 5, Chips: 500}), ErrTableClosed)
}

func TestDealer_Submit_closed(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))
	d.EndShift()

	_, err := d.Submit(context.Background(), 1, action.Fold, 0)
	a.ErrorIs(err, ErrTableClosed)

	_, err = d.Snapshot(context.Background(), 1)
	a.ErrorIs(err, ErrTableClosed)

	select {
	case <-d.Done():
	default:
		a.Fail("dealer should be done")
	}
}

func TestDealer_actionTimeout(t *testing.T) {
	cfg := testTableConfig(humans(2)...)
	cfg.ActionTimeout = 20 * time.Millisecond
	d := startDealer(t, cfg)

	// nobody acts, so every hand ends with the player on the clock being folded
	waitForHand(t, d, 3)
}

func TestDealer_startClock(t *testing.T) {
	a := assert.New(t)
	cfg := testTableConfig(humans(3)...)
	cfg.ActionTimeout = time.Minute

	// the run loop is never started, so the test owns the dealer's state
	d, err := NewDealer("test-uuid", cfg)
	if !a.NoError(err) {
		return
	}

	d.gameChanged()
	turn := d.game.CurrentTurn().PlayerID
	deadline := d.turnDeadline
	a.Equal(turn, d.turnPlayerID)
	a.False(deadline.IsZero())

	// someone else leaving keeps the deadline of the person on the clock
	other := turn%3 + 1
	d.foldDisconnected(other)
	a.True(d.game.Participants()[other-1].IsFolded())
	a.Equal(turn, d.turnPlayerID)
	a.Equal(deadline, d.turnDeadline)

	_, err = d.apply(turn, action.Fold, 0)
	a.NoError(err)
	a.True(d.game.IsHandOver())
	a.Zero(d.turnPlayerID)
	a.True(d.turnDeadline.IsZero())
}

func TestDealer_startClock_sameSeatNextStreet(t *testing.T) {
	a := assert.New(t)
	cfg := testTableConfig(humans(2)...)
	cfg.ActionTimeout = time.Minute

	d, err := NewDealer("test-uuid", cfg)
	if !a.NoError(err) {
		return
	}

	d.gameChanged()
	_, err = d.apply(d.turnPlayerID, action.Call, 0)
	a.NoError(err)

	// the big blind closes the pre-flop and is first to act on the flop
	bigBlind := d.turnPlayerID
	d.turnDeadline = time.Now().Add(-time.Second)
	_, err = d.apply(bigBlind, action.Check, 0)
	a.NoError(err)
	a.Equal(texasholdem.Flop, d.game.Phase())
	a.Equal(bigBlind, d.turnPlayerID)
	a.True(d.turnDeadline.After(time.Now()), "acting restarts the clock")
}

func TestDealer_aiPlaysAgainstPerson(t *testing.T) {
	a := assert.New(t)
	seats := humans(1)
	seats = append(seats, &Seat{PlayerID: 2, Name: "AI 1", Chips: 1000, AILevel: 3})
	d := startDealer(t, testTableConfig(seats...))

	c := NewClient(nil, 1, d.UUID)
	d.AddClient(c)

	// the computer player always calls, so the person is on the clock after every AI move
	snap := snapshot(t, d, 1)
	a.Equal(int64(1), snap.Turn)

	ctx := context.Background()
	for snap.HandNumber == 1 {
		act := action.Check
		if snap.Viewer.AmountOwed > 0 {
			act = action.Call
		}

		_, err := d.Submit(ctx, 1, act, 0)
		if !a.NoError(err) {
			return
		}

		snap = snapshot(t, d, 1)
		if snap.HandOver {
			break
		}

		a.Equal(int64(1), snap.Turn)
	}

	settlement := nextMessage(t, c, "settlement")
	a.NotNil(settlement.Data)

	a.Equal(2000, tableChips(snap))
}

func TestDealer_ReceivedMessage(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))

	c := NewClient(nil, 1, d.UUID)
	d.AddClient(c)

	game := nextMessage(t, c, "game")
	a.Equal(gameKey, game.Value)
	snap := game.Data.(*texasholdem.Snapshot)
	a.Equal(int64(1), snap.Viewer.PlayerID)

	c.ReceivedMessage(&playable.PayloadIn{Action: "shuffle", Context: "ctx-1"})
	resp := replyTo(t, c, "ctx-1")
	a.Equal("error", resp.Key)
	a.Equal(texasholdem.ErrInvalidAction.Error(), resp.Value)

	c.ReceivedMessage(&playable.PayloadIn{Action: "getState", Context: "ctx-2"})
	resp = replyTo(t, c, "ctx-2")
	a.Equal("game", resp.Key)

	act := "fold"
	if resp.Data.(*texasholdem.Snapshot).Turn != 1 {
		act = "call"
	}

	c.ReceivedMessage(&playable.PayloadIn{Action: act, Context: "ctx-3"})
	resp = replyTo(t, c, "ctx-3")
	if act == "fold" {
		a.Equal("status", resp.Key)
		a.Equal("OK", resp.Value)
	} else {
		a.Equal("error", resp.Key)
		a.Equal(texasholdem.ErrNotYourTurn.Error(), resp.Value)
	}
}

func TestDealer_RemoveClient_folds(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))

	c := NewClient(nil, 1, d.UUID)
	second := NewClient(nil, 1, d.UUID)
	d.AddClient(c)
	d.AddClient(second)

	// still connected from another tab
	a.False(d.RemoveClient(c))
	a.Equal(1, snapshot(t, d, 1).HandNumber)
	a.False(snapshot(t, d, 1).Seats[0].Folded)

	a.True(d.RemoveClient(second))
	waitForHand(t, d, 2)
}

func TestDealer_clientState(t *testing.T) {
	a := assert.New(t)
	d := startDealer(t, testTableConfig(humans(2)...))

	c := NewClient(nil, 2, d.UUID)
	d.AddClient(c)

	resp := nextMessage(t, c, "clientState")
	players := resp.Data.([]*clientStatePlayer)
	if a.Len(players, 2) {
		a.False(players[0].IsConnected)
		a.True(players[1].IsConnected)
		a.False(players[1].Controller.IsAI())
	}
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)
	d := &Dealer{}

	for i := 0; i < logMessageLimit+5; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice(0, "message %d", i))
	}

	a.Len(d.logMessages, logMessageLimit)
	a.Equal("message 5", d.logMessages[0].Message)
}
