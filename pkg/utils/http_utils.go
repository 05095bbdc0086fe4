package utils

import (
	"encoding/json"
	"net/http"
)

func WriteHttpResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteHttpError 统一的错误响应体 {"error": ...}
func WriteHttpError(w http.ResponseWriter, code int, message string) {
	WriteHttpResponse(w, code, map[string]string{"error": message})
}
