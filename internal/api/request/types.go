package request

// EnqueueRequest is the request body for joining the matchmaking queue
type EnqueueRequest struct {
	PlayerID string `json:"player_id"`
}

// SubmitTurnRequest is the request body for submitting a turn
type SubmitTurnRequest struct {
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

// ForfeitRequest is the request body for conceding a session
type ForfeitRequest struct {
	PlayerID string `json:"player_id"`
}
