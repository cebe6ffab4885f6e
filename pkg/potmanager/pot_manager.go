package potmanager

import (
	"errors"
	"fmt"
)

// ParticipantError is an error that happened because of a participant error
type ParticipantError string

func (p ParticipantError) Error() string {
	return string(p)
}

// ErrGameOver is an error an action is attempted after the pots were settled
var ErrGameOver = errors.New("game is over")

// ErrRoundOver is an error when the round is over
var ErrRoundOver = errors.New("round is over")

// ErrRoundNotOver is an error when the next round is requested too early
var ErrRoundNotOver = errors.New("round is not over")

// ErrParticipantNotFound is an error when a participant with a provided ID cannot be found
var ErrParticipantNotFound = errors.New("participant not found")

// ErrParticipantAllIn is an error when an all-in participant is asked to fold
var ErrParticipantAllIn = errors.New("participant is all-in")

// ErrParticipantCannotAct is an error when the participant cannot act
var ErrParticipantCannotAct = ParticipantError("it is not your turn")

// ErrCannotCheck is an error when a participant checks while owing chips
var ErrCannotCheck = ParticipantError("you cannot check with an active bet")

// ErrRaiseTooSmall is an error when a bet or raise does not exceed the current bet
var ErrRaiseTooSmall = ParticipantError("your raise must be greater than the current bet")

// PotManager keeps track of bets, pots and whose turn it is for one hand
// It knows nothing about who controls a seat, human or not.
type PotManager struct {
	participants map[int64]*ParticipantInPot
	tableOrder   []*ParticipantInPot

	// actionAtIndex is who is currently making a decision, -1 when nobody is
	actionAtIndex int
	// lastRaiseIndex is who last raised the current bet this round, -1 when nobody has
	lastRaiseIndex int
	currentBet     int

	// isGameOver will prevent any further action from happening
	isGameOver bool
}

// New instantiates a new PotManager
func New() *PotManager {
	return &PotManager{
		participants:   make(map[int64]*ParticipantInPot),
		tableOrder:     make([]*ParticipantInPot, 0),
		actionAtIndex:  -1,
		lastRaiseIndex: -1,
	}
}

// SeatParticipant adds a participant to the hand in the order called
// This method must be called in hand order: left of the dealer first, the dealer last
func (p *PotManager) SeatParticipant(pt Participant) error {
	if pt.Balance() <= 0 {
		return errors.New("cannot seat participant without a balance")
	}

	if _, ok := p.participants[pt.ID()]; ok {
		return fmt.Errorf("participant %d is already seated", pt.ID())
	}

	pip := &ParticipantInPot{
		Participant: pt,
		tableIndex:  len(p.tableOrder),
	}
	p.participants[pt.ID()] = pip
	p.tableOrder = append(p.tableOrder, pip)

	return nil
}

// PostBlind moves a forced bet from the participant into the pot
// A short stack posts what it has and goes all-in. Returns the amount posted.
func (p *PotManager) PostBlind(pt Participant, amount int) (int, error) {
	pip, ok := p.participants[pt.ID()]
	if !ok {
		return 0, ErrParticipantNotFound
	}

	if amount <= pip.amountInPlay || !pip.canAct() {
		return 0, nil
	}

	posted := pip.commit(amount - pip.amountInPlay)
	if pip.amountInPlay > p.currentBet {
		p.currentBet = pip.amountInPlay
	}

	return posted, nil
}

// StartBettingRound puts the first participant at or after index who needs to act on the clock
func (p *PotManager) StartBettingRound(index int) {
	p.actionAtIndex = -1
	if len(p.tableOrder) == 0 || p.IsRoundOver() {
		return
	}

	n := len(p.tableOrder)
	for i := 0; i < n; i++ {
		idx := ((index+i)%n + n) % n
		if p.needsAction(p.tableOrder[idx]) {
			p.actionAtIndex = idx
			return
		}
	}
}

// ParticipantFolds handles a fold
func (p *PotManager) ParticipantFolds(pt Participant) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	pip.state = Folded
	p.completeTurn()
	return nil
}

// ParticipantChecks handles a check
func (p *PotManager) ParticipantChecks(pt Participant) error {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return err
	}

	if pip.amountInPlay != p.currentBet {
		return ErrCannotCheck
	}

	pip.state = Acted
	p.completeTurn()
	return nil
}

// ParticipantCalls handles a call
// Calling with nothing owed is a check. Calling more than the balance is an all-in for what is left.
// Returns the amount moved into the pot.
func (p *PotManager) ParticipantCalls(pt Participant) (int, error) {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return 0, err
	}

	called := 0
	if owed := p.currentBet - pip.amountInPlay; owed > 0 {
		called = pip.commit(owed)
	}

	if pip.state != AllIn {
		pip.state = Acted
	}

	p.completeTurn()
	return called, nil
}

// ParticipantBetsOrRaises will raise the participant's bet to newBetOrRaise
// The amount is the new total for the round and must exceed the current bet. An amount the
// participant cannot cover is an all-in for what is left. Returns the participant's new total.
func (p *PotManager) ParticipantBetsOrRaises(pt Participant, newBetOrRaise int) (int, error) {
	pip, err := p.getActiveParticipantInPot(pt)
	if err != nil {
		return 0, err
	}

	if newBetOrRaise <= p.currentBet {
		return 0, ErrRaiseTooSmall
	}

	pip.commit(newBetOrRaise - pip.amountInPlay)
	if pip.state != AllIn {
		pip.state = Acted
	}

	// an all-in short of the current bet is only a call
	if pip.amountInPlay > p.currentBet {
		p.currentBet = pip.amountInPlay
		p.lastRaiseIndex = pip.tableIndex

		for _, other := range p.tableOrder {
			if other != pip && other.state == Acted {
				other.state = NotActed
			}
		}
	}

	p.completeTurn()
	return pip.amountInPlay, nil
}

// ForceFold folds a participant out of turn
// Folding a participant who already folded is a no-op.
func (p *PotManager) ForceFold(pt Participant) error {
	if p.isGameOver {
		return ErrGameOver
	}

	pip, ok := p.participants[pt.ID()]
	if !ok {
		return ErrParticipantNotFound
	}

	switch pip.state {
	case Folded:
		return nil
	case AllIn:
		return ErrParticipantAllIn
	}

	pip.state = Folded
	if pip.tableIndex == p.actionAtIndex || p.IsRoundOver() {
		p.completeTurn()
	}

	return nil
}

// completeTurn must be called after a participant bets, raises, checks, calls, or folds
func (p *PotManager) completeTurn() {
	if p.IsRoundOver() {
		p.actionAtIndex = -1
		return
	}

	// stay in for loop until we find a player who needs to act
	n := len(p.tableOrder)
	for i := 1; i <= n; i++ {
		pip := p.tableOrder[(p.actionAtIndex+i)%n]
		if p.needsAction(pip) {
			p.actionAtIndex = pip.tableIndex
			return
		}
	}

	p.actionAtIndex = -1
}

func (p *PotManager) needsAction(pip *ParticipantInPot) bool {
	return pip.canAct() && (pip.state == NotActed || pip.amountInPlay < p.currentBet)
}

// IsRoundOver returns true if no participant needs to act in the current betting round
func (p *PotManager) IsRoundOver() bool {
	if p.GetNonFoldedParticipantCount() <= 1 {
		return true
	}

	var canAct []*ParticipantInPot
	for _, pip := range p.tableOrder {
		if pip.canAct() {
			canAct = append(canAct, pip)
		}
	}

	switch {
	case len(canAct) == 0:
		return true
	case len(canAct) == 1:
		// nobody is left to respond to a raise
		return canAct[0].amountInPlay >= p.currentBet
	}

	for _, pip := range canAct {
		if pip.state != Acted || pip.amountInPlay != p.currentBet {
			return false
		}
	}

	return true
}

// NextRound closes the betting round and clears the per-round bets
func (p *PotManager) NextRound() error {
	if !p.IsRoundOver() {
		return ErrRoundNotOver
	}

	for _, pip := range p.tableOrder {
		pip.reset()
	}

	p.currentBet = 0
	p.lastRaiseIndex = -1
	p.actionAtIndex = -1

	return nil
}

// GetBet returns the current bet
func (p *PotManager) GetBet() int {
	return p.currentBet
}

// GetLastRaiseIndex returns the hand-order index of the last raise this round, or -1
func (p *PotManager) GetLastRaiseIndex() int {
	return p.lastRaiseIndex
}

// GetInTurnParticipant returns the participant who is to act next
// Returns nil if the round is over
func (p *PotManager) GetInTurnParticipant() Participant {
	if p.actionAtIndex < 0 || p.isGameOver {
		return nil
	}

	return p.tableOrder[p.actionAtIndex].Participant
}

// GetAmountOwed returns what the participant must add to call
func (p *PotManager) GetAmountOwed(pt Participant) int {
	pip, ok := p.participants[pt.ID()]
	if !ok || !pip.canAct() {
		return 0
	}

	return p.currentBet - pip.amountInPlay
}

// GetParticipantState returns the participant's state in the current round
func (p *PotManager) GetParticipantState(pt Participant) (SeatState, error) {
	pip, ok := p.participants[pt.ID()]
	if !ok {
		return NotActed, ErrParticipantNotFound
	}

	return pip.state, nil
}

// IsParticipantYetToAct returns true if the participant still needs to act this round
// This also ensures the participant didn't fold and they are not all-in
func (p *PotManager) IsParticipantYetToAct(pt Participant) bool {
	pip, ok := p.participants[pt.ID()]
	if !ok || p.IsRoundOver() {
		return false
	}

	return p.needsAction(pip)
}


// GetNonFoldedParticipantCount returns the number of participants still contesting the pot
func (p *PotManager) GetNonFoldedParticipantCount() int {
	count := 0
	for _, pip := range p.tableOrder {
		if !pip.isFolded() {
			count++
		}
	}

	return count
}

// Total returns every chip moved into the pot this hand
func (p *PotManager) Total() int {
	total := 0
	for _, pip := range p.tableOrder {
		total += pip.committed
	}

	return total
}

// getActiveParticipantInPot returns the ParticipantInPot if the participant is on the clock, otherwise
// an error if the participant cannot act
func (p *PotManager) getActiveParticipantInPot(pt Participant) (*ParticipantInPot, error) {
	if p.isGameOver {
		return nil, ErrGameOver
	}

	pip, ok := p.participants[pt.ID()]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	if p.actionAtIndex < 0 {
		return nil, ErrRoundOver
	}

	if pip.tableIndex != p.actionAtIndex {
		return nil, ErrParticipantCannotAct
	}

	return pip, nil
}

// EndGame will prevent further action from happening
func (p *PotManager) EndGame() {
	p.isGameOver = true
	p.actionAtIndex = -1
}
