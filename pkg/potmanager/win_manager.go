package potmanager

type tier[S any] struct {
	strength     S
	participants []Participant
}

// WinManager groups participants into tiers of equal hand strength
type WinManager[S any] struct {
	compare func(a, b S) int
	tiers   []*tier[S]
}

// NewWinManager returns an empty WinManager
// compare must return a positive number when a is the better hand, zero on a tie.
func NewWinManager[S any](compare func(a, b S) int) *WinManager[S] {
	return &WinManager[S]{
		compare: compare,
	}
}

// AddParticipant records a participant's hand strength
func (w *WinManager[S]) AddParticipant(p Participant, strength S) {
	for i, t := range w.tiers {
		c := w.compare(strength, t.strength)
		if c == 0 {
			t.participants = append(t.participants, p)
			return
		}

		if c > 0 {
			w.tiers = append(w.tiers, nil)
			copy(w.tiers[i+1:], w.tiers[i:])
			w.tiers[i] = &tier[S]{strength: strength, participants: []Participant{p}}
			return
		}
	}

	w.tiers = append(w.tiers, &tier[S]{strength: strength, participants: []Participant{p}})
}

// GetSortedTiers returns the participants grouped by strength, the best tier first
func (w *WinManager[S]) GetSortedTiers() [][]Participant {
	tieredParticipants := make([][]Participant, len(w.tiers))
	for i, t := range w.tiers {
		tieredParticipants[i] = t.participants
	}

	return tieredParticipants
}
