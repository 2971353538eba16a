package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"
)

// maxBody limita el tamaño de los cuerpos JSON aceptados.
const maxBody = 1 << 20

// Write serializa v como JSON con el status indicado.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody es el formato de error JSON para errores de validación.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError responde {"error": msg, "fields": {...}}.
func WriteError(w http.ResponseWriter, status int, msg string, fields map[string]string) {
	Write(w, status, ErrorBody{Error: msg, Fields: fields})
}

var ErrInvalidJSON = errors.New("invalid json")

// Decode lee el body rechazando campos desconocidos.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrInvalidJSON
	}
	return nil
}
