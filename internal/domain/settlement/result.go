package settlement

import "time"

type ErrorKind string

const (
	ErrorNone                  ErrorKind = "NONE"
	ErrorInvalidPosition       ErrorKind = "INVALID_POSITION"
	ErrorInsufficientResources ErrorKind = "INSUFFICIENT_RESOURCES"
	ErrorTerrainUnsuitable     ErrorKind = "TERRAIN_UNSUITABLE"
	ErrorPositionOccupied      ErrorKind = "POSITION_OCCUPIED"
	ErrorOutOfTerritory        ErrorKind = "OUT_OF_TERRITORY"
	ErrorTooCloseToBuilding    ErrorKind = "TOO_CLOSE_TO_BUILDING"
	ErrorNoAdjacentFlag        ErrorKind = "NO_ADJACENT_FLAG"
	ErrorInvalidRoadPath       ErrorKind = "INVALID_ROAD_PATH"
	ErrorEngine                ErrorKind = "ENGINE_ERROR"
	ErrorUnknown               ErrorKind = "UNKNOWN_ERROR"
)

// ValidationResult is the validator's verdict. A zero Corrected means the
// proposed position was used as is.
type ValidationResult struct {
	Valid      bool      `json:"valid"`
	Reason     string    `json:"reason"`
	Kind       ErrorKind `json:"kind"`
	Confidence float64   `json:"confidence"`
	Corrected  Pos       `json:"corrected"`
}

func (r ValidationResult) HasCorrection() bool { return r.Valid && !r.Corrected.IsZero() }

func Accept(reason string) ValidationResult {
	return ValidationResult{Valid: true, Reason: reason, Kind: ErrorNone, Confidence: 1.0}
}

func AcceptCorrected(pos Pos, reason string) ValidationResult {
	return ValidationResult{Valid: true, Reason: reason, Kind: ErrorNone, Confidence: 0.8, Corrected: pos}
}

func Reject(kind ErrorKind, reason string) ValidationResult {
	return ValidationResult{Valid: false, Reason: reason, Kind: kind}
}

type ExecutionResult struct {
	Success  bool          `json:"success"`
	Reward   float64       `json:"reward"`
	Message  string        `json:"message"`
	Kind     ErrorKind     `json:"kind"`
	Duration time.Duration `json:"duration"`
}
