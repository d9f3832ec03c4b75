package request

// SetPlayerCountRequest sets the roster size for the next game
type SetPlayerCountRequest struct {
	Count int `json:"count"`
}

// RenamePlayerRequest updates a player's display name
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// SetAvatarRequest updates a player's avatar symbol
type SetAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// SetInputRequest records the in-progress point entry text
type SetInputRequest struct {
	Text string `json:"text"`
}

// AddTurnRequest records a turn for the current player. Points is the
// raw entry text; the server parses it so the client doesn't have to
// decide what counts as a number.
type AddTurnRequest struct {
	Points string `json:"points"`
}
