package utils

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": message}
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}

// JSONErrorDetails writes {"error": message, "details": details}
func JSONErrorDetails(w http.ResponseWriter, statusCode int, message, details string) {
	JSON(w, statusCode, map[string]string{"error": message, "details": details})
}
