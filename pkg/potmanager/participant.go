package potmanager

// Participant provides an interface for retrieving and adjusting a participants balance
type Participant interface {
	ID() int64
	Balance() int
	AdjustBalance(amount int)
	SetAmountInPlay(amount int)
}

// SeatState is where a participant stands within the current betting round
type SeatState int

// seat state constants
const (
	NotActed SeatState = iota
	Acted
	Folded
	AllIn
)

var seatStateNames = [...]string{"not-acted", "acted", "folded", "all-in"}

func (s SeatState) String() string {
	if s < NotActed || s > AllIn {
		return "unknown"
	}

	return seatStateNames[s]
}

// ParticipantInPot is a participant in a pot
type ParticipantInPot struct {
	Participant
	// tableIndex is the position in hand order, left of the dealer first
	tableIndex int
	// amountInPlay keeps track of how much the player is risking on the current betting round
	amountInPlay int
	// committed is everything the player has moved into the pot this hand
	committed int
	state     SeatState
}

// reset is called when the betting round is complete
func (p *ParticipantInPot) reset() {
	p.amountInPlay = 0
	p.SetAmountInPlay(0)

	if p.state == Acted {
		p.state = NotActed
	}
}

// commit moves up to amount from the participant's balance into the pot
// The participant goes all-in when the balance runs out. Returns what was moved.
func (p *ParticipantInPot) commit(amount int) int {
	if amount >= p.Balance() {
		amount = p.Balance()
		p.state = AllIn
	}

	p.amountInPlay += amount
	p.committed += amount
	p.Participant.AdjustBalance(-amount)
	p.Participant.SetAmountInPlay(p.amountInPlay)

	return amount
}

// canAct returns true if the participant can check, call, bet, raise, fold
func (p *ParticipantInPot) canAct() bool {
	return p.state != Folded && p.state != AllIn
}

func (p *ParticipantInPot) isFolded() bool {
	return p.state == Folded
}

// isEligibleFor returns true if the participant can win a pot capped at level
func (p *ParticipantInPot) isEligibleFor(level int) bool {
	switch p.state {
	case Folded:
		return false
	case AllIn:
		return p.committed >= level
	}

	return true
}
