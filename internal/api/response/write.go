package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes data as a JSON response with the given status. A nil data
// writes headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// NoContent writes a 204 response, used by leave-queue and forfeit
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
