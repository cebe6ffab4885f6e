package texasholdem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase(t *testing.T) {
	a := assert.New(t)

	a.Equal("pre-flop", PreFlop.String())
	a.Equal("showdown", Showdown.String())
	a.Equal("", Phase(42).String())

	dealt := 0
	for p := PreFlop; p <= Showdown; p++ {
		dealt += p.CardsToDeal()
	}
	a.Equal(5, dealt)
	a.Equal(3, Flop.CardsToDeal())
	a.Equal(0, Phase(-1).CardsToDeal())

	b, err := json.Marshal(Turn)
	a.NoError(err)
	a.JSONEq(`{"id":2,"name":"turn"}`, string(b))
}
