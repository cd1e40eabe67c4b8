package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

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

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
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

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Match:
		o.printMatch(v)
	case []Player:
		o.printPlayers(v)
	case Board:
		o.printBoard(v)
	case []Combination:
		o.printCombinations(v)
	case []Standing:
		o.printStandings(v)
	case ValidPositions:
		o.printValidPositions(v)
	case PlaceResult:
		o.printPlaceResult(v)
	case SettleResult:
		o.printSettleResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Match response type (matches API)
type Match struct {
	ID            string   `json:"id"`
	State         string   `json:"state"`
	Players       []string `json:"players"`
	CurrentPlayer string   `json:"current_player"`
	Turn          int      `json:"turn"`
	CurrentTile   int      `json:"current_tile"`
	DeckRemaining int      `json:"deck_remaining"`
}

// Player response type
type Player struct {
	ID        string `json:"id"`
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	StartTile int    `json:"start_tile"`
	CatchUp   bool   `json:"catch_up,omitempty"`
}

// Position response type
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board response type
type Board struct {
	Cells        [][]int  `json:"cells"`
	Origin       Position `json:"origin"`
	TileCount    int      `json:"tile_count"`
	FlippedTiles int      `json:"flipped_tiles"`
}

// Combination response type
type Combination struct {
	Attribute string     `json:"attribute"`
	Positions []Position `json:"positions"`
	Flippable []Position `json:"flippable"`
}

// Standing response type
type Standing struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	FlippedTiles int    `json:"flipped_tiles"`
	Winner       bool   `json:"winner"`
}

// ValidPositions response type
type ValidPositions struct {
	Positions []Position `json:"positions"`
}

// PlaceResult response type
type PlaceResult struct {
	Match         Match         `json:"match"`
	Board         Board         `json:"board"`
	Combinations  []Combination `json:"combinations"`
	MatchComplete bool          `json:"match_complete"`
}

// SettleResult response type
type SettleResult struct {
	Points int   `json:"points"`
	Board  Board `json:"board"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

var colorNames = map[int]string{
	1: "Blue", 2: "Green", 3: "Orange", 4: "Pink", 5: "Purple", 6: "Yellow",
}

var symbolNames = map[int]string{
	1: "Pillow", 2: "Bone", 3: "Bowl", 4: "Can", 5: "Poop", 6: "Pug",
}

// emptyCellCode mirrors the API's dense grid encoding
const emptyCellCode = 990

// describeTile renders a two-digit deck code as "Color Symbol (code)"
func describeTile(code int) string {
	color, symbol := code/10, code%10
	if colorNames[color] == "" || symbolNames[symbol] == "" {
		return fmt.Sprintf("none (%d)", code)
	}
	return fmt.Sprintf("%s %s (%d)", colorNames[color], symbolNames[symbol], code)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	fmt.Printf("State: %s\n", m.State)
	fmt.Printf("Turn: %d\n", m.Turn)
	fmt.Printf("Current Tile: %s\n", describeTile(m.CurrentTile))
	fmt.Printf("Deck Remaining: %d\n", m.DeckRemaining)
	fmt.Printf("Current Player: %s\n", m.CurrentPlayer)
	fmt.Printf("Players (%d):\n", len(m.Players))
	for _, p := range m.Players {
		fmt.Printf("  - %s\n", p)
	}
}

func (o *Output) printPlayers(players []Player) {
	for _, p := range players {
		catchUp := ""
		if p.CatchUp {
			catchUp = " [catch-up]"
		}
		fmt.Printf("Seat %d: %s (%s)%s\n", p.Seat, p.Name, p.ID, catchUp)
		fmt.Printf("  Score: %d\n", p.Score)
		fmt.Printf("  Start Tile: %s\n", describeTile(p.StartTile))
	}
}

func (o *Output) printBoard(b Board) {
	fmt.Printf("Tiles: %d (%d flipped)\n", b.TileCount, b.FlippedTiles)
	fmt.Printf("Origin: row %d, col %d\n", b.Origin.Row, b.Origin.Col)
	o.printGrid(b.Cells)
}

// printGrid renders a dense grid of cell codes, '.' for empty cells
func (o *Output) printGrid(cells [][]int) {
	if len(cells) == 0 {
		return
	}
	size := len(cells[0])

	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf("  %d  ", col)
	}
	fmt.Println()

	for row := range cells {
		fmt.Printf(" %d |", row)
		for _, code := range cells[row] {
			if code == emptyCellCode {
				fmt.Print("  .  ")
			} else {
				fmt.Printf(" %3d ", code)
			}
		}
		fmt.Println("|")
	}
}

func (o *Output) printCombinations(combos []Combination) {
	if len(combos) == 0 {
		fmt.Println("No combinations available")
		return
	}
	for i, c := range combos {
		fmt.Printf("%d. by %s: %s (flippable: %s)\n",
			i+1, c.Attribute, formatPositions(c.Positions), formatPositions(c.Flippable))
	}
}

func formatPositions(positions []Position) string {
	out := ""
	for i, p := range positions {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return out
}

func (o *Output) printStandings(standings []Standing) {
	for _, s := range standings {
		marker := ""
		if s.Winner {
			marker = " [winner]"
		}
		fmt.Printf("%s: %d points, %d flipped%s\n", s.Name, s.Score, s.FlippedTiles, marker)
	}
}

func (o *Output) printValidPositions(v ValidPositions) {
	if len(v.Positions) == 0 {
		fmt.Println("No valid positions")
		return
	}
	fmt.Printf("Valid positions: %s\n", formatPositions(v.Positions))
}

func (o *Output) printPlaceResult(p PlaceResult) {
	fmt.Println("Tile placed")
	o.printBoard(p.Board)

	if len(p.Combinations) > 0 {
		fmt.Println("\nCombinations available:")
		o.printCombinations(p.Combinations)
	}

	if p.MatchComplete {
		fmt.Println("\nMatch complete!")
	} else {
		fmt.Printf("\nNext: %s places %s\n", p.Match.CurrentPlayer, describeTile(p.Match.CurrentTile))
	}
}

func (o *Output) printSettleResult(s SettleResult) {
	fmt.Printf("Scored %d points\n", s.Points)
	o.printBoard(s.Board)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
