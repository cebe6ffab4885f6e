package playable

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage(0, "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
	assert.Nil(t, lm.Cards)
	assert.Len(t, lm.UUID, 36)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage(1, "test %d", 4)
	assert.Equal(t, "test 4", lm.Message)
	assert.Equal(t, []int64{1}, lm.PlayerIDs)
}

func TestSimpleLogMessageSlice(t *testing.T) {
	lms := SimpleLogMessageSlice(0, "test %d", 38)
	assert.Equal(t, 1, len(lms))
	assert.Equal(t, "test 38", lms[0].Message)
}

func TestCardsLogMessage(t *testing.T) {
	cards := deck.CardsFromString("2c,3d,4h")
	lm := CardsLogMessage(cards, "dealt the flop")
	assert.Equal(t, "dealt the flop", lm.Message)
	assert.Equal(t, cards, lm.Cards)
	assert.Nil(t, lm.PlayerIDs)
}

func TestOK(t *testing.T) {
	assert.Equal(t, &Response{Key: "status", Value: "OK"}, OK())
	assert.Equal(t, "ctx", OK("ctx").Context)
}

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	a.NoError(json.Unmarshal([]byte(`{"action":"raise","additionalData":{"amount":300,"note":"hi"},"context":"abc"}`), &payload))
	a.Equal("raise", payload.Action)
	a.Equal("abc", payload.Context)

	amount, ok := payload.AdditionalData.GetInt("amount")
	a.True(ok)
	a.Equal(300, amount)

	_, ok = payload.AdditionalData.GetInt("note")
	a.False(ok)

	note, ok := payload.AdditionalData.GetString("note")
	a.True(ok)
	a.Equal("hi", note)
}
