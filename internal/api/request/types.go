package request

import "github.com/pugroyal/pugroyal-go/internal/model"

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	PlayerNames []string `json:"player_names"`
}

// PlaceRequest is the request body for placing the central tile
type PlaceRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SettleRequest is the request body for settling a combination.
// Positions identifies the combination by its exact member set; Flips
// selects one or two of its flippable tiles.
type SettleRequest struct {
	Positions []model.Position `json:"positions"`
	Flips     []model.Position `json:"flips"`
}
