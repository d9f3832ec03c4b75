package response

import (
	"time"

	"github.com/tiletally/tiletally-go/internal/model"
)

// Player represents a player in API responses. TurnCount is how many
// entries in the log belong to this player.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Total     int    `json:"total"`
	TurnCount int    `json:"turn_count"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:     string(p.ID),
		Name:   p.Name,
		Avatar: p.Avatar,
		Total:  p.Total,
	}
}

// Turn represents a recorded turn
type Turn struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name,omitempty"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session represents the full session state in API responses
type Session struct {
	ID            string    `json:"id"`
	Stage         string    `json:"stage"`
	PlayerCount   int       `json:"player_count"`
	Players       []Player  `json:"players"`
	Turns         []Turn    `json:"turns"`
	CurrentIndex  int       `json:"current_player_index"`
	CurrentPlayer *Player   `json:"current_player,omitempty"`
	PendingInput  string    `json:"pending_input,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionFromModel converts model.Session. Turns carry the referenced
// player's name when the player is still in the roster; a stale
// reference simply leaves the name blank.
func SessionFromModel(s *model.Session) Session {
	players := make([]Player, len(s.Players))
	turnCounts := make(map[model.PlayerID]int, len(s.Players))
	for _, t := range s.Turns {
		turnCounts[t.PlayerID]++
	}
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p)
		players[i].TurnCount = turnCounts[p.ID]
	}

	turns := make([]Turn, len(s.Turns))
	for i, t := range s.Turns {
		turn := Turn{
			ID:        string(t.ID),
			PlayerID:  string(t.PlayerID),
			Points:    t.Points,
			CreatedAt: t.CreatedAt,
		}
		if p := s.FindPlayer(t.PlayerID); p != nil {
			turn.PlayerName = p.Name
		}
		turns[i] = turn
	}

	var current *Player
	if p := s.CurrentPlayer(); p != nil {
		cp := PlayerFromModel(*p)
		current = &cp
	}

	return Session{
		ID:            string(s.ID),
		Stage:         string(s.Stage),
		PlayerCount:   s.PlayerCount,
		Players:       players,
		Turns:         turns,
		CurrentIndex:  s.CurrentIndex,
		CurrentPlayer: current,
		PendingInput:  s.PendingInput,
		UpdatedAt:     s.UpdatedAt,
	}
}

// Palette lists the avatar symbols a client may offer for selection
type Palette struct {
	Avatars []string `json:"avatars"`
}
