package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/action"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/texasholdem"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
)

// maxAIActions stops a run of computer players from starving the run loop
const maxAIActions = 1000

// ErrTableClosed is returned when a request reaches a table that has shut down
var ErrTableClosed = errors.New("table is closed")

// Dealer runs a single table
// Every change to the game happens on the dealer's run loop.
type Dealer struct {
	UUID string

	name          string
	logger        logrus.FieldLogger
	generator     rng.Generator
	game          *texasholdem.Game
	tickable      playable.Tickable
	policies      map[int64]ai.Policy
	actionTimeout time.Duration
	tickInterval  time.Duration

	clients map[*Client]bool
	lock    sync.RWMutex

	// run loop state
	turnPlayerID    int64
	turnDeadline    time.Time
	lastSettledHand int
	logMessages     []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan struct{}
	closeOnce     sync.Once
}

// NewDealer seats the players and deals the first hand
// The dealer does nothing until StartShift is called.
func NewDealer(id string, cfg TableConfig) (*Dealer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = texasholdem.NameFromOptions(cfg.Options)
	}

	logger := logrus.WithFields(logrus.Fields{
		"uuid": id,
		"name": name,
	})

	players := make([]playable.Player, len(cfg.Seats))
	policies := make(map[int64]ai.Policy)
	for i, seat := range cfg.Seats {
		players[i] = seat
		if policy := ai.ForLevel(seat.AILevel, cfg.Generator); policy != nil {
			policies[seat.PlayerID] = policy
		}
	}

	game, err := texasholdem.NewGame(logger, players, cfg.Options, cfg.Generator)
	if err != nil {
		return nil, err
	}

	tickInterval := cfg.TickInterval
	if tickInterval == 0 {
		tickInterval = game.Delay()
	}

	if cfg.ActionTimeout > 0 && cfg.ActionTimeout < tickInterval {
		tickInterval = cfg.ActionTimeout
	}

	return &Dealer{
		UUID:          id,
		name:          name,
		logger:        logger,
		generator:     cfg.Generator,
		game:          game,
		tickable:      game,
		policies:      policies,
		actionTimeout: cfg.ActionTimeout,
		tickInterval:  tickInterval,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan struct{}),
	}, nil
}

// Name returns the table name
func (d *Dealer) Name() string {
	return d.name
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop and disconnects every client
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)

		for _, client := range d.Clients() {
			select {
			case client.Close <- "the table was closed":
			default:
			}
		}
	})
}

// Done returns a channel that is closed when the dealer stops
func (d *Dealer) Done() <-chan struct{} {
	return d.close
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	// the first hand was dealt before anyone could see it
	d.gameChanged()

	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientState()
			case stateGameEvent:
				d.sendGameData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-ticker.C:
			d.tick()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn on the run loop without waiting for it
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	select {
	case d.execInRunLoop <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.close:
		return ErrTableClosed
	}
}

// notify asks the run loop to send updates, dropping the request if the loop is backed up
func (d *Dealer) notify(s state) {
	select {
	case d.stateChanged <- s:
	default:
	}
}

type submitResult struct {
	outcome *texasholdem.Outcome
	err     error
}

// Submit performs an action for a player and waits for the result
func (d *Dealer) Submit(ctx context.Context, playerID int64, act action.Action, amount int) (*texasholdem.Outcome, error) {
	res := make(chan submitResult, 1)
	if err := d.exec(ctx, func() {
		outcome, err := d.apply(playerID, act, amount)
		res <- submitResult{outcome: outcome, err: err}
	}); err != nil {
		return nil, err
	}

	select {
	case r := <-res:
		return r.outcome, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.close:
		return nil, ErrTableClosed
	}
}

// Snapshot returns the table as the player sees it
func (d *Dealer) Snapshot(ctx context.Context, playerID int64) (*texasholdem.Snapshot, error) {
	res := make(chan *texasholdem.Snapshot, 1)
	if err := d.exec(ctx, func() {
		res <- d.game.Snapshot(playerID)
	}); err != nil {
		return nil, err
	}

	select {
	case snap := <-res:
		return snap, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.close:
		return nil, ErrTableClosed
	}
}

// AddSeat sits another player down at the table
// The player is dealt in from the next hand.
func (d *Dealer) AddSeat(ctx context.Context, seat *Seat) error {
	if err := seat.validate(); err != nil {
		return err
	}

	res := make(chan error, 1)
	if err := d.exec(ctx, func() {
		res <- d.addSeat(seat)
	}); err != nil {
		return err
	}

	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.close:
		return ErrTableClosed
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) addSeat(seat *Seat) error {
	if err := d.game.AddPlayer(seat); err != nil {
		return err
	}

	if policy := ai.ForLevel(seat.AILevel, d.generator); policy != nil {
		d.policies[seat.PlayerID] = policy
	}

	d.sendClientState()
	d.gameChanged()

	return nil
}

// apply performs a person's action
// NOTE: must only be called from the run loop
func (d *Dealer) apply(playerID int64, act action.Action, amount int) (*texasholdem.Outcome, error) {
	if _, isAI := d.policies[playerID]; isAI {
		return nil, texasholdem.ErrNotYourTurn
	}

	outcome, err := d.game.Action(playerID, act, amount)
	if err != nil {
		if !texasholdem.IsUserError(err) {
			d.logger.WithError(err).WithField("playerID", playerID).Error("could not perform action")
			d.gameChanged()
		}

		return nil, err
	}

	if playerID == d.turnPlayerID {
		d.turnPlayerID = 0
	}

	d.gameChanged()
	return outcome, nil
}

// tick handles timeouts and starts the next hand
// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	if d.turnPlayerID != 0 && !d.turnDeadline.IsZero() && time.Now().After(d.turnDeadline) {
		playerID := d.turnPlayerID
		d.turnPlayerID = 0

		d.logger.WithField("playerID", playerID).Info("player ran out of time")
		if _, err := d.game.ForceFold(playerID); err != nil {
			d.logger.WithError(err).WithField("playerID", playerID).Error("could not fold player")
		}

		d.gameChanged()
		return
	}

	changed, err := d.tickable.Tick()
	if err != nil {
		d.logger.WithError(err).Error("could not deal the next hand")
	}

	if changed {
		d.gameChanged()
	}
}

// gameChanged lets the computer players act, tells everyone what happened and starts the clock
// NOTE: must only be called from the run loop
func (d *Dealer) gameChanged() {
	d.flushGameState()
	for i := 0; i < maxAIActions && d.playAITurn(); i++ {
		d.flushGameState()
	}

	d.startClock()
}

// playAITurn makes a decision for the computer player on the clock
// Returns false if a person (or nobody) is on the clock.
func (d *Dealer) playAITurn() bool {
	turn := d.game.CurrentTurn()
	if turn == nil {
		return false
	}

	policy, ok := d.policies[turn.PlayerID]
	if !ok {
		return false
	}

	decision := policy.Decide(d.game.Snapshot(turn.PlayerID))
	if _, err := d.game.Action(turn.PlayerID, decision.Action, decision.Amount); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"playerID": turn.PlayerID,
			"policy":   policy.Name(),
			"action":   decision.Action,
			"amount":   decision.Amount,
		}).Warn("computer player made an invalid decision, folding")

		if _, err := d.game.ForceFold(turn.PlayerID); err != nil {
			d.logger.WithError(err).Error("could not fold computer player")
			return false
		}
	}

	return true
}

// startClock gives the person on the clock ActionTimeout to act
// A person who is still on the clock keeps their deadline.
func (d *Dealer) startClock() {
	turn := d.game.CurrentTurn()
	if turn == nil || turn.Controller().IsAI() {
		d.turnPlayerID = 0
		d.turnDeadline = time.Time{}
		return
	}

	if turn.PlayerID == d.turnPlayerID {
		return
	}

	d.turnPlayerID = turn.PlayerID
	d.turnDeadline = time.Time{}
	if d.actionTimeout > 0 {
		d.turnDeadline = time.Now().Add(d.actionTimeout)
	}
}

// flushGameState sends new log messages, the result of a finished hand and everyone's view of the table
// NOTE: must only be called from the run loop
func (d *Dealer) flushGameState() {
	var logs []*playable.LogMessage
	for drained := false; !drained; {
		select {
		case batch := <-d.game.LogChan():
			logs = append(logs, batch...)
		default:
			drained = true
		}
	}

	if len(logs) > 0 {
		d.addLogMessages(logs)
		d.broadcast(&playable.Response{
			Key:  "logs",
			Data: logs,
		})
	}

	if settlement := d.game.LastSettlement(); settlement != nil && settlement.HandNumber != d.lastSettledHand {
		d.lastSettledHand = settlement.HandNumber
		d.broadcast(&playable.Response{
			Key:  "settlement",
			Data: settlement,
		})
	}

	d.sendGameData()
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		d.sendTo(client, d.gameResponse(client.playerID))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	participants := d.game.Participants()
	players := make([]*clientStatePlayer, len(participants))
	for i, p := range participants {
		players[i] = &clientStatePlayer{
			PlayerID:    p.PlayerID,
			Name:        p.Name(),
			Controller:  p.Controller(),
			IsConnected: connected[p.PlayerID],
		}
	}

	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: players,
	})
}

func (d *Dealer) gameResponse(playerID int64) *playable.Response {
	return &playable.Response{
		Key:   "game",
		Value: gameKey,
		Data:  d.game.Snapshot(playerID),
	}
}

func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		d.sendTo(client, msg)
	}
}

func (d *Dealer) sendTo(client *Client, msg interface{}) {
	if !client.Send(msg) {
		d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropping message")
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.notify(stateClientEvent)
	_ = d.exec(context.Background(), func() {
		d.sendTo(client, &playable.Response{
			Key:  "logs",
			Data: d.logMessages,
		})
		d.sendTo(client, d.gameResponse(client.playerID))
	})
}

// RemoveClient removes a client
// A person who no longer has any connection to the table is folded out of the current hand.
// This method must return quickly.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	stillConnected := false
	for other := range d.clients {
		if other.playerID == client.playerID {
			stillConnected = true
			break
		}
	}
	d.lock.Unlock()

	if !stillConnected {
		_ = d.exec(context.Background(), func() {
			d.foldDisconnected(client.playerID)
		})
	}

	if nClients > 0 {
		d.notify(stateClientEvent)
		return false
	}

	return true
}

// foldDisconnected folds a person who left the table in the middle of a hand
// NOTE: must only be called from the run loop
func (d *Dealer) foldDisconnected(playerID int64) {
	p, err := d.game.GetParticipant(playerID)
	if err != nil || p.Controller().IsAI() {
		return
	}

	if d.game.IsHandOver() || !p.IsInHand() || p.IsFolded() || p.IsAllIn() {
		return
	}

	d.logger.WithField("playerID", playerID).Info("player disconnected, folding")
	if _, err := d.game.ForceFold(playerID); err != nil {
		d.logger.WithError(err).WithField("playerID", playerID).Error("could not fold player")
		return
	}

	d.gameChanged()
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "getState":
		_ = d.exec(context.Background(), func() {
			resp := d.gameResponse(c.playerID)
			resp.Context = msg.Context
			d.sendTo(c, resp)
		})
	default:
		act, err := action.FromString(msg.Action)
		if err != nil {
			d.logger.WithField("action", msg.Action).Warn("unknown message")
			d.sendTo(c, newErrorResponse(msg.Context, texasholdem.ErrInvalidAction))
			return
		}

		amount, _ := msg.AdditionalData.GetInt("amount")
		_ = d.exec(context.Background(), func() {
			if _, err := d.apply(c.playerID, act, amount); err != nil {
				d.sendTo(c, newErrorResponse(msg.Context, err))
				return
			}

			d.sendTo(c, playable.OK(msg.Context))
		})
	}
}
