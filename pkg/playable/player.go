package playable

// Player is a player in a playable game
type Player interface {
	GetPlayerID() int64
	GetName() string
	GetTableStake() int
	// GetAILevel returns 0 for a seat controlled by a person, otherwise the AI's skill level
	GetAILevel() int
}
