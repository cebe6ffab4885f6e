package texasholdem

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/potmanager"
)

// Game is a table of No-Limit Texas Hold'em
// A game is not safe for concurrent use; the owner must serialize every call.
type Game struct {
	logger  logrus.FieldLogger
	options Options
	gen     rng.Generator

	participants map[int64]*Participant
	// seatOrder is the order players sit around the table
	seatOrder []*Participant
	// handOrder is everyone dealt into the current hand, left of the dealer first and the dealer last
	handOrder   []*Participant
	dealerIndex int

	deck       *deck.Deck
	community  deck.Hand
	phase      Phase
	potManager *potmanager.PotManager

	handNumber   int
	handOver     bool
	handOverAt   time.Time
	paused       bool
	chipsAtStart int
	lastAction   *LastAction
	settlement   *Settlement
	invariantErr *InvariantError

	logChan chan []*playable.LogMessage
}

// NewGame seats the players in the order given and deals the first hand
func NewGame(logger logrus.FieldLogger, players []playable.Player, opts Options, gen rng.Generator) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(players) < 2 {
		return nil, ErrInsufficientPlayers
	}

	if len(players) > opts.MaxSeats {
		return nil, fmt.Errorf("a table seats at most %d players", opts.MaxSeats)
	}

	if gen == nil {
		gen = rng.Crypto{}
	}

	g := &Game{
		logger:       logger,
		options:      opts,
		gen:          gen,
		participants: make(map[int64]*Participant, len(players)),
		seatOrder:    make([]*Participant, 0, len(players)),
		dealerIndex:  -1,
		handOver:     true,
		logChan:      make(chan []*playable.LogMessage, 256),
	}

	for _, player := range players {
		if _, err := g.seat(player); err != nil {
			return nil, err
		}
	}

	if err := g.StartNewHand(); err != nil {
		return nil, err
	}

	return g, nil
}

// AddPlayer seats a player at the end of the table
// The player is dealt in from the next hand. A paused table resumes on the next Tick
// once two players have chips.
func (g *Game) AddPlayer(player playable.Player) error {
	if len(g.seatOrder) >= g.options.MaxSeats {
		return UserError(fmt.Sprintf("a table seats at most %d players", g.options.MaxSeats))
	}

	p, err := g.seat(player)
	if err != nil {
		return err
	}

	g.logger.WithFields(logrus.Fields{
		"playerID": p.PlayerID,
		"chips":    p.chips,
	}).Info("player sat down")
	g.sendLogs(playable.SimpleLogMessageSlice(p.PlayerID, "{} sat down with ${%d}", p.chips))

	return nil
}

func (g *Game) seat(player playable.Player) (*Participant, error) {
	id := player.GetPlayerID()
	if _, ok := g.participants[id]; ok {
		return nil, UserError(fmt.Sprintf("player %d is seated twice", id))
	}

	if player.GetTableStake() < 0 {
		return nil, UserError(fmt.Sprintf("player %d cannot have a negative stake", id))
	}

	p := newParticipant(id, player.GetName(), player.GetTableStake(), Controller(player.GetAILevel()))
	g.participants[id] = p
	g.seatOrder = append(g.seatOrder, p)

	return p, nil
}

// StartNewHand moves the button, posts the blinds and deals the hole cards
// If fewer than two players have chips, the table is paused and ErrInsufficientPlayers is returned.
func (g *Game) StartNewHand() error {
	g.invariantErr = nil
	g.settlement = nil
	g.lastAction = nil
	g.community = make(deck.Hand, 0, 5)
	g.phase = PreFlop
	g.handOrder = nil

	for _, p := range g.seatOrder {
		p.resetForHand()
	}

	funded := g.fundedSeats()
	if funded < 2 {
		if !g.paused {
			g.logger.WithField("funded", funded).Warn("not enough players with chips, pausing table")
			g.sendLogs(playable.SimpleLogMessageSlice(0, "the table is paused until more players have chips"))
		}

		g.paused = true
		g.handOver = true
		return ErrInsufficientPlayers
	}

	g.paused = false
	g.dealerIndex = g.nextFundedSeat(g.dealerIndex)

	n := len(g.seatOrder)
	for i := 1; i <= n; i++ {
		p := g.seatOrder[(g.dealerIndex+i)%n]
		if p.chips > 0 {
			p.inHand = true
			g.handOrder = append(g.handOrder, p)
		}
	}

	g.handNumber++
	g.handOver = false
	g.chipsAtStart = g.totalChips()
	g.deck = deck.NewShuffled(g.gen)
	g.potManager = potmanager.New()
	for _, p := range g.handOrder {
		if err := g.potManager.SeatParticipant(p); err != nil {
			return g.abortHand(err)
		}
	}

	dealer := g.seatOrder[g.dealerIndex]
	g.logger.WithFields(logrus.Fields{
		"hand":    g.handNumber,
		"dealer":  dealer.PlayerID,
		"players": len(g.handOrder),
		"deck":    g.deck.HashCode(),
	}).Debug("starting hand")
	g.sendLogs(playable.SimpleLogMessageSlice(dealer.PlayerID, "hand #%d: {} has the button", g.handNumber))

	bigBlindIndex := g.postBlinds()

	if err := g.dealHoleCards(); err != nil {
		return g.abortHand(err)
	}

	g.potManager.StartBettingRound(bigBlindIndex + 1)
	return g.advance()
}

func (g *Game) fundedSeats() int {
	funded := 0
	for _, p := range g.seatOrder {
		if p.chips > 0 {
			funded++
		}
	}

	return funded
}

// nextFundedSeat returns the seat index of the next player with chips after index
// The first hand has index -1, which puts the button on the first player with chips.
func (g *Game) nextFundedSeat(index int) int {
	n := len(g.seatOrder)
	for i := 1; i <= n; i++ {
		idx := (index + i) % n
		if g.seatOrder[idx].chips > 0 {
			return idx
		}
	}

	return index
}

// postBlinds posts both blinds and returns the hand-order index of the big blind
// Heads-up, the dealer posts the small blind.
func (g *Game) postBlinds() int {
	smallBlindIndex, bigBlindIndex := 0, 1
	if len(g.handOrder) == 2 {
		smallBlindIndex, bigBlindIndex = 1, 0
	}

	blinds := []struct {
		index  int
		amount int
		name   string
	}{
		{smallBlindIndex, g.options.SmallBlind, "small"},
		{bigBlindIndex, g.options.BigBlind, "big"},
	}

	logs := make([]*playable.LogMessage, 0, len(blinds))
	for _, blind := range blinds {
		p := g.handOrder[blind.index]

		// the participant is seated, so this cannot fail
		posted, _ := g.potManager.PostBlind(p, blind.amount)

		msg := playable.SimpleLogMessage(p.PlayerID, "{} posted the %s blind of ${%d}", blind.name, posted)
		if p.chips == 0 {
			msg.Message += " and is all-in"
		}

		logs = append(logs, msg)
	}

	g.sendLogs(logs)
	return bigBlindIndex
}

// dealHoleCards deals two cards to everyone in the hand, one at a time, starting left of the dealer
func (g *Game) dealHoleCards() error {
	for i := 0; i < 2; i++ {
		for _, p := range g.handOrder {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.cards.AddCard(card)
		}
	}

	return g.verifyCards()
}

// dealCommunity adds n cards to the board
func (g *Game) dealCommunity(n int) error {
	if g.potManager.GetNonFoldedParticipantCount() == 0 {
		return ErrNoActiveSeats
	}

	if !g.deck.CanDraw(n) {
		return deck.ErrEndOfDeck
	}

	dealt := make([]deck.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		g.community.AddCard(card)
		dealt = append(dealt, card)
	}

	if err := g.verifyCards(); err != nil {
		return err
	}

	g.sendLogs([]*playable.LogMessage{playable.CardsLogMessage(dealt, "dealt the %s", g.phase)})
	return nil
}

// verifyCards ensures the deck, hole cards and board are exactly one deck
func (g *Game) verifyCards() error {
	piles := make([][]deck.Card, 0, len(g.handOrder)+2)
	piles = append(piles, g.deck.Cards, g.community)
	for _, p := range g.handOrder {
		piles = append(piles, p.cards)
	}

	return deck.VerifyUniverse(piles...)
}

// advance moves through the streets for as long as no betting is required
func (g *Game) advance() error {
	for !g.handOver && g.potManager.IsRoundOver() {
		if g.potManager.GetNonFoldedParticipantCount() <= 1 {
			return g.settle()
		}

		if g.phase == River {
			g.phase = Showdown
			return g.settle()
		}

		if err := g.potManager.NextRound(); err != nil {
			return g.abortHand(err)
		}

		g.phase++
		if err := g.dealCommunity(g.phase.CardsToDeal()); err != nil {
			return g.abortHand(err)
		}

		// after the flop, action starts left of the dealer
		g.potManager.StartBettingRound(0)
	}

	return nil
}

// abortHand refunds every chip committed to the hand and records the fatal error
func (g *Game) abortHand(err error) error {
	if g.potManager != nil {
		g.potManager.Refund()
	}

	g.invariantErr = &InvariantError{Err: err}
	g.handOver = true
	g.handOverAt = time.Now()

	g.logger.WithError(err).WithField("hand", g.handNumber).Error("hand aborted")
	g.sendLogs(playable.SimpleLogMessageSlice(0, "hand #%d was aborted and all bets were returned", g.handNumber))

	return g.invariantErr
}

func (g *Game) totalChips() int {
	total := 0
	for _, p := range g.seatOrder {
		total += p.chips
	}

	return total
}

// sendLogs queues log messages without ever blocking the game
func (g *Game) sendLogs(logs []*playable.LogMessage) {
	select {
	case g.logChan <- logs:
	default:
		g.logger.WithField("messages", len(logs)).Warn("log channel is full, dropping messages")
	}
}

// LogChan returns a channel log messages are sent on
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Name returns the name
func (g *Game) Name() string {
	return NameFromOptions(g.options)
}

// Options returns the options the game was created with
func (g *Game) Options() Options {
	return g.options
}

// Phase returns the current phase of the hand
func (g *Game) Phase() Phase {
	return g.phase
}

// Pot returns every chip committed to the current hand
func (g *Game) Pot() int {
	if g.potManager == nil {
		return 0
	}

	return g.potManager.Total()
}

// CurrentBet returns the bet everyone must match in the current betting round
func (g *Game) CurrentBet() int {
	if g.potManager == nil || g.handOver {
		return 0
	}

	return g.potManager.GetBet()
}

// Community returns a copy of the community cards
func (g *Game) Community() deck.Hand {
	return g.community.Clone()
}

// DealerPosition returns the seat index of the button
func (g *Game) DealerPosition() int {
	return g.dealerIndex
}

// HandNumber returns the number of hands dealt at the table
func (g *Game) HandNumber() int {
	return g.handNumber
}

// IsHandOver returns true between the end of one hand and the start of the next
func (g *Game) IsHandOver() bool {
	return g.handOver
}

// IsPaused returns true if the table is waiting for more players with chips
func (g *Game) IsPaused() bool {
	return g.paused
}

// LastSettlement returns the result of the last completed hand, if it is over
func (g *Game) LastSettlement() *Settlement {
	return g.settlement
}

// Err returns the error that aborted the current hand, if any
func (g *Game) Err() error {
	if g.invariantErr == nil {
		return nil
	}

	return g.invariantErr
}

// Participants returns the players in seat order
func (g *Game) Participants() []*Participant {
	participants := make([]*Participant, len(g.seatOrder))
	copy(participants, g.seatOrder)
	return participants
}

// GetParticipant returns the player with the given ID
func (g *Game) GetParticipant(playerID int64) (*Participant, error) {
	p, ok := g.participants[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	return p, nil
}

// CurrentTurn returns the player who must act, or nil if nobody can
func (g *Game) CurrentTurn() *Participant {
	if g.handOver || g.potManager == nil {
		return nil
	}

	pt := g.potManager.GetInTurnParticipant()
	if pt == nil {
		return nil
	}

	return pt.(*Participant)
}
