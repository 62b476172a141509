package game24

import "game24/internal/expr"

// NumbersRequest is the JSON body for /game24/solvable and /game24/hint.
type NumbersRequest struct {
	Numbers []float64 `json:"numbers"`
}

// SolvableResponse is the JSON response for POST /game24/solvable.
type SolvableResponse struct {
	Numbers  []float64 `json:"numbers"`
	Solvable bool      `json:"solvable"`
}

// HintResponse is the JSON response for POST /game24/hint. Solution is null
// when no expression reaches 24.
type HintResponse struct {
	Numbers  []float64 `json:"numbers"`
	Found    bool      `json:"found"`
	Solution *string   `json:"solution"`
}

// PuzzleResponse is the JSON response for GET /game24/puzzle.
type PuzzleResponse struct {
	Numbers  []float64 `json:"numbers"`
	Attempts int       `json:"attempts"`
	Fallback bool      `json:"fallback"`
}

// VerifyRequest is the JSON body for POST /game24/verify.
type VerifyRequest struct {
	Numbers    []float64 `json:"numbers"`
	Expression string    `json:"expression"` // e.g. "(8 - 4) * (6 * 1)"
}

// VerifyResponse is the JSON response for POST /game24/verify.
type VerifyResponse struct {
	Expression string      `json:"expression"` // normalised rendering
	Value      float64     `json:"value"`
	Correct    bool        `json:"correct"`
	Steps      []expr.Step `json:"steps"`
}
