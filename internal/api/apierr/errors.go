package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeBoardNotFound       = "BOARD_NOT_FOUND"
	CodeInvalidPlayerCount  = "INVALID_PLAYER_COUNT"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeMatchComplete       = "MATCH_COMPLETE"
	CodeNoTileToPlace       = "NO_TILE_TO_PLACE"
	CodePositionOccupied    = "POSITION_OCCUPIED"
	CodeNotAdjacent         = "NOT_ADJACENT"
	CodeOutOfBounds         = "OUT_OF_BOUNDS"
	CodeCombinationNotFound = "COMBINATION_NOT_FOUND"
	CodeInvalidFlips        = "INVALID_FLIPS"
	CodeInvalidSaveFile     = "INVALID_SAVE_FILE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrBoardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBoardNotFound, "Board not found"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerCount, "A match needs 2 to 4 players"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrMatchComplete):
		return &httpError{http.StatusConflict, APIError{CodeMatchComplete, "Match is already complete"}}
	case errors.Is(err, model.ErrNoTileToPlace):
		return &httpError{http.StatusConflict, APIError{CodeNoTileToPlace, "No central tile available"}}
	case errors.Is(err, model.ErrPositionOccupied):
		return &httpError{http.StatusConflict, APIError{CodePositionOccupied, "Position is already occupied"}}
	case errors.Is(err, model.ErrPlacementNotAdjacent):
		return &httpError{http.StatusBadRequest, APIError{CodeNotAdjacent, "Tile must touch an existing tile"}}
	case errors.Is(err, model.ErrPlacementOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Placement exceeds the board footprint"}}
	case errors.Is(err, model.ErrCombinationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCombinationNotFound, "Combination not available on this board"}}
	case errors.Is(err, model.ErrInvalidFlipSelection):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFlips, "Invalid flip selection"}}
	case errors.Is(err, model.ErrInvalidCombinationSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Combinations hold 3 to 5 tiles"}}
	case errors.Is(err, model.ErrInvalidTileCode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid tile code"}}
	case errors.Is(err, model.ErrInvalidSaveFile):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSaveFile, "Invalid save file"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
