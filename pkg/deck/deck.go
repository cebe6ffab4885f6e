package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"holdem-server/internal/rng"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrDuplicateCard is an error when the same card is found twice in play
var ErrDuplicateCard = errors.New("duplicate card detected")

// ErrMissingCard is an error when a card from the deck cannot be accounted for
var ErrMissingCard = errors.New("card missing from play")

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. Use NewShuffled() for a deck that is ready to deal
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

// NewShuffled returns a freshly built deck shuffled with the provided generator
func NewShuffled(gen rng.Generator) *Deck {
	d := New()
	d.Shuffle(gen)
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will rebuild the deck and shuffle all 52 cards
func (d *Deck) Shuffle(gen rng.Generator) {
	// we always want to shuffle from a complete deck
	d.buildDeck()

	rng.Shuffle(gen, len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a face-down card.
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return FaceDown, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// VerifyUniverse checks that the piles together hold every card of a standard deck exactly once
func VerifyUniverse(piles ...[]Card) error {
	seen := make(map[Card]bool, Size)
	for _, pile := range piles {
		for _, card := range pile {
			if card.IsFaceDown() || card.Rank < 2 || card.Rank > Ace || !card.Suit.valid() {
				return fmt.Errorf("invalid card %#v: %w", card, ErrMissingCard)
			}

			if seen[card] {
				return fmt.Errorf("%s: %w", card, ErrDuplicateCard)
			}

			seen[card] = true
		}
	}

	if len(seen) != Size {
		return fmt.Errorf("found %d of %d cards: %w", len(seen), Size, ErrMissingCard)
	}

	return nil
}
