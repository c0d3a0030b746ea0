package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/soaringjerry/ec0301/internal/middleware"
	"github.com/soaringjerry/ec0301/internal/services"
	"github.com/soaringjerry/ec0301/internal/utils"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDocument sends a rendered document as a download.
func writeDocument(w http.ResponseWriter, doc *services.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// readBody returns the request body, or "{}" when it is empty so that a
// bodiless request behaves like an empty object.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &services.ServiceError{Code: services.ErrorInvalid, Message: "request.too_large", Err: err}
		}
		return nil, &services.ServiceError{Code: services.ErrorInvalid, Message: "request.invalid_json", Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []byte("{}"), nil
	}
	return b, nil
}

func decodeBody(r *http.Request, v any) error {
	b, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &services.ServiceError{Code: services.ErrorInvalid, Message: "request.invalid_json", Err: err}
	}
	return nil
}

// writeError maps err onto the response contract: client mistakes get
// {success:false,message}, server failures get {success:false,error}.
// fallbackKey names the failure for errors that carry no message.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, op, fallbackKey string, err error) {
	locale := middleware.LocaleFromContext(r.Context())
	fields := []zap.Field{
		zap.String("req_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("op", op),
		zap.Error(err),
	}

	se, ok := services.AsServiceError(err)
	if !ok {
		rt.log.Error("request failed", fields...)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": utils.T(locale, fallbackKey)})
		return
	}
	switch se.Code {
	case services.ErrorInvalid:
		status := http.StatusBadRequest
		if se.Message == "request.too_large" {
			status = http.StatusRequestEntityTooLarge
		}
		rt.log.Warn("request rejected", fields...)
		writeJSON(w, status, map[string]any{"success": false, "message": utils.T(locale, se.Message)})
	case services.ErrorNotFound:
		rt.log.Warn("not found", fields...)
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": utils.T(locale, se.Message)})
	default:
		rt.log.Error("request failed", fields...)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": utils.T(locale, se.Message)})
	}
}
