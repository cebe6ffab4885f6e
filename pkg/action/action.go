package action

import (
	"encoding/json"
	"fmt"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Bet   Action = "bet"
	Raise Action = "raise"
)

var actionNames = map[Action]string{
	Fold:  "Fold",
	Check: "Check",
	Call:  "Call",
	Bet:   "Bet",
	Raise: "Raise",
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := actionNames[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	panic("unknown action")
}

type actionJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts either the encoded object or the bare identifier
func (a *Action) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var aj actionJSON
		if err := json.Unmarshal(b, &aj); err != nil {
			return err
		}

		id = aj.ID
	}

	act, err := FromString(id)
	if err != nil {
		return err
	}

	*a = act
	return nil
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := actionNames[a]
	return ok
}

// IsAggressive returns true if the action puts more chips at risk than the current bet
func (a Action) IsAggressive() bool {
	return a == Bet || a == Raise
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called ${%d}", amount)
	case Bet:
		return fmt.Sprintf("bet ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	}

	return ""
}
