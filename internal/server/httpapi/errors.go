package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response messages that clients match on.
const (
	msgNotAuthenticated   = "Not authenticated"
	msgAccessDenied       = "Access denied"
	msgInvalidCredentials = "Invalid username or password"
	msgNoProducts         = "aye, there are no products here"
	msgNoSuchProduct      = "aye, there is no such product here!"
	msgNameNotUnique      = "Product name must be unique"
	msgProductAdded       = "product added successfully"
	msgInternal           = "Internal server error"
)

type detailBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error as {"detail": message}.
func writeDetail(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, detailBody{Detail: message})
}
