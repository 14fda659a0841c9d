package handlers

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// writeJSONResponse escribe una respuesta JSON
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := sonic.ConfigStd.Marshal(data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response","code":"ENCODING_ERROR"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
