package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Result types decoded from API responses

// Player is a roster entry with its running total
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Total     int    `json:"total"`
	TurnCount int    `json:"turn_count"`
}

// Turn is a recorded scoring entry
type Turn struct {
	ID         string    `json:"id"`
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is the full session state
type Session struct {
	ID            string   `json:"id"`
	Stage         string   `json:"stage"`
	PlayerCount   int      `json:"player_count"`
	Players       []Player `json:"players"`
	Turns         []Turn   `json:"turns"`
	CurrentIndex  int      `json:"current_player_index"`
	CurrentPlayer *Player  `json:"current_player"`
	PendingInput  string   `json:"pending_input"`
}

// Palette is the set of selectable avatars
type Palette struct {
	Avatars []string `json:"avatars"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case Palette:
		o.printPalette(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session %s  [%s]\n", s.ID, s.Stage)

	switch s.Stage {
	case "setup":
		fmt.Printf("Players for next game: %d\n", s.PlayerCount)
	case "naming":
		fmt.Println("Roster:")
		for _, p := range s.Players {
			fmt.Printf("  %s %-20s %s\n", p.Avatar, p.Name, p.ID)
		}
	case "play":
		fmt.Println("Scores:")
		for i, p := range s.Players {
			marker := " "
			if i == s.CurrentIndex {
				marker = ">"
			}
			fmt.Printf("%s %s %-20s %5d\n", marker, p.Avatar, p.Name, p.Total)
		}
		if len(s.Turns) > 0 {
			fmt.Printf("Turns recorded: %d\n", len(s.Turns))
			last := s.Turns[len(s.Turns)-1]
			name := last.PlayerName
			if name == "" {
				name = last.PlayerID
			}
			fmt.Printf("Last: %+d for %s\n", last.Points, name)
		}
		if s.PendingInput != "" {
			fmt.Printf("Pending input: %q\n", s.PendingInput)
		}
	}
}

func (o *Output) printPalette(p Palette) {
	fmt.Println(strings.Join(p.Avatars, " "))
}
