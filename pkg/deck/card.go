package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits is every suit in deck order
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

var suitNames = [...]string{"clubs", "diamonds", "hearts", "spades"}
var suitGlyphs = [...]string{"♣", "♢", "♡", "♠"}
var suitLetters = [...]string{"c", "d", "h", "s"}

func (s Suit) valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) String() string {
	if !s.valid() {
		return fmt.Sprintf("suit(%d)", int(s))
	}

	return suitNames[s]
}

// Glyph returns the display symbol for the suit
func (s Suit) Glyph() string {
	if !s.valid() {
		panic("unknown suit")
	}

	return suitGlyphs[s]
}

// face cards
const (
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	HighAce = Ace
	LowAce  = 1
)

var rankDisplay = map[int]string{
	10:    "T",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Card is an individual playing card
// The zero value is a face-down card, used to mask cards a viewer is not allowed to see
type Card struct {
	Rank int
	Suit Suit
}

// FaceDown is the placeholder for a card that is hidden from the viewer
var FaceDown = Card{}

// IsFaceDown returns true if the card is a face-down placeholder
func (c Card) IsFaceDown() bool {
	return c.Rank == 0
}

// RankString returns the display form of a rank (2-9, T, J, Q, K, A)
func RankString(rank int) string {
	if r, ok := rankDisplay[rank]; ok {
		return r
	}

	if rank == LowAce {
		return rankDisplay[Ace]
	}

	return strconv.Itoa(rank)
}

func (c Card) String() string {
	if c.IsFaceDown() {
		return "XX"
	}

	return RankString(c.Rank) + c.Suit.Glyph()
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c == card
}

// AceLowRank return the rank where Ace is considered low instead of high
func (c Card) AceLowRank() int {
	if c.Rank == Ace {
		return LowAce
	}

	return c.Rank
}

type cardJSON struct {
	Rank     int    `json:"rank,omitempty"`
	Suit     string `json:"suit,omitempty"`
	Display  string `json:"display,omitempty"`
	FaceDown bool   `json:"faceDown,omitempty"`
}

// MarshalJSON encodes the card, or a face-down marker for the zero value
func (c Card) MarshalJSON() ([]byte, error) {
	if c.IsFaceDown() {
		return json.Marshal(cardJSON{FaceDown: true})
	}

	return json.Marshal(cardJSON{
		Rank:    c.Rank,
		Suit:    c.Suit.String(),
		Display: c.String(),
	})
}

// UnmarshalJSON decodes a card encoded by MarshalJSON
func (c *Card) UnmarshalJSON(b []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return err
	}

	if cj.FaceDown {
		*c = FaceDown
		return nil
	}

	for i, name := range suitNames {
		if name == cj.Suit {
			*c = Card{Rank: cj.Rank, Suit: Suit(i)}
			return nil
		}
	}

	return fmt.Errorf("unknown suit: %q", cj.Suit)
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	letter := strings.ToLower(match[2])
	for i, l := range suitLetters {
		if l == letter {
			return Card{Rank: rank, Suit: Suit(i)}
		}
	}

	// should never be hit due to the regexp
	panic("unknown suit")
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(strings.TrimSpace(card))
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	if card.IsFaceDown() {
		return ""
	}

	return fmt.Sprintf("%d%s", card.Rank, suitLetters[card.Suit])
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
