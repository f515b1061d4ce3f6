package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/vocab/pkg/api"
)

// maxBodyBytes ограничение на размер тела запроса
const maxBodyBytes = 1 << 20

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendData оборачивает полезную нагрузку в {"data": ...}
func sendData[T any](logger *slog.Logger, w http.ResponseWriter, data T) {
	sendJSON(logger, w, api.Response[T]{Data: data}, http.StatusOK)
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// decodeJSON читает тело запроса в v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
