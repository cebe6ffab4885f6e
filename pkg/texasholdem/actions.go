package texasholdem

import (
	"errors"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/action"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/potmanager"
)

// Action performs an action for the player on the clock
// amount is only used for bets and raises and is the new total bet for the round.
// A user error leaves the game untouched.
func (g *Game) Action(playerID int64, act action.Action, amount int) (*Outcome, error) {
	if g.invariantErr != nil {
		return nil, g.invariantErr
	}

	p, ok := g.participants[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if g.handOver || g.paused {
		return nil, ErrHandFinished
	}

	if !act.IsValid() {
		return nil, ErrInvalidAction
	}

	if current := g.CurrentTurn(); current == nil || current.PlayerID != playerID {
		return nil, ErrNotYourTurn
	}

	logAmount := 0
	var err error
	switch {
	case act == action.Fold:
		if err = g.potManager.ParticipantFolds(p); err == nil {
			p.folded = true
			p.result = resultFolded
		}
	case act == action.Check:
		err = g.potManager.ParticipantChecks(p)
	case act == action.Call:
		if g.potManager.GetAmountOwed(p) == 0 {
			// nothing is owed, so this is a check
			act = action.Check
			err = g.potManager.ParticipantChecks(p)
		} else {
			logAmount, err = g.potManager.ParticipantCalls(p)
		}
	case act.IsAggressive():
		previousBet := g.potManager.GetBet()
		if previousBet == 0 {
			act = action.Bet
		} else {
			act = action.Raise
		}

		if logAmount, err = g.potManager.ParticipantBetsOrRaises(p, amount); err == nil && logAmount <= previousBet {
			// an all-in short of the bet is only a call
			act = action.Call
		}
	}

	if err != nil {
		return nil, translatePotManagerError(err)
	}

	g.recordAction(p, act, logAmount, false)

	if err := g.advance(); err != nil {
		return nil, err
	}

	return g.outcome(), nil
}

// ForceFold folds a player out of turn, i.e., when their time runs out or they leave the table
// Folding a player who has folded, is all-in, or is not in the hand is a no-op.
func (g *Game) ForceFold(playerID int64) (*Outcome, error) {
	if g.invariantErr != nil {
		return nil, g.invariantErr
	}

	p, ok := g.participants[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	if g.handOver || g.paused || !p.inHand || p.folded {
		return g.outcome(), nil
	}

	if err := g.potManager.ForceFold(p); err != nil {
		if errors.Is(err, potmanager.ErrParticipantAllIn) {
			return g.outcome(), nil
		}

		return nil, translatePotManagerError(err)
	}

	p.folded = true
	p.result = resultFolded
	g.recordAction(p, action.Fold, 0, true)

	if err := g.advance(); err != nil {
		return nil, err
	}

	return g.outcome(), nil
}

// LegalActions returns the actions the player may take right now
func (g *Game) LegalActions(playerID int64) []action.Action {
	p, ok := g.participants[playerID]
	if !ok || g.invariantErr != nil {
		return nil
	}

	if current := g.CurrentTurn(); current == nil || current.PlayerID != playerID {
		return nil
	}

	if !p.canAct() || !g.potManager.IsParticipantYetToAct(p) {
		return nil
	}

	owed := g.potManager.GetAmountOwed(p)
	actions := []action.Action{action.Fold}
	if owed == 0 {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	currentBet := g.potManager.GetBet()
	if currentBet == 0 && p.chips > 0 {
		actions = append(actions, action.Bet)
	} else if currentBet > 0 && p.chips > owed {
		actions = append(actions, action.Raise)
	}

	return actions
}

// AmountOwed returns what the player must add to call
func (g *Game) AmountOwed(playerID int64) int {
	p, ok := g.participants[playerID]
	if !ok || g.handOver || g.potManager == nil {
		return 0
	}

	return g.potManager.GetAmountOwed(p)
}

// MinRaise returns the smallest total a raise (or bet) could be for the current round
func (g *Game) MinRaise() int {
	if g.potManager == nil {
		return g.options.BigBlind
	}

	if bet := g.potManager.GetBet(); bet > 0 {
		return bet + g.options.BigBlind
	}

	return g.options.BigBlind
}

func (g *Game) recordAction(p *Participant, act action.Action, amount int, forced bool) {
	g.lastAction = &LastAction{
		PlayerID: p.PlayerID,
		Action:   act,
		Amount:   amount,
		Phase:    g.phase,
		Forced:   forced,
	}

	g.logger.WithFields(logrus.Fields{
		"hand":     g.handNumber,
		"playerID": p.PlayerID,
		"action":   act,
		"amount":   amount,
		"forced":   forced,
	}).Debug("player action")

	msg := playable.SimpleLogMessage(p.PlayerID, "{} %s", act.LogMessage(amount))
	if p.IsAllIn() {
		msg.Message += " and is all-in"
	}

	if forced {
		msg.Message += " (forced)"
	}

	g.sendLogs([]*playable.LogMessage{msg})
}

func (g *Game) outcome() *Outcome {
	return &Outcome{
		Phase:      g.phase,
		HandNumber: g.handNumber,
		Settlement: g.settlement,
	}
}
