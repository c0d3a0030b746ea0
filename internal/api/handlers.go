package api

import (
	"net/http"

	"github.com/soaringjerry/ec0301/internal/middleware"
	"github.com/soaringjerry/ec0301/internal/services"
	"github.com/soaringjerry/ec0301/internal/utils"
	"go.uber.org/zap"
)

// POST /api/process-payment
// { cardNumber }
func (rt *Router) handlePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CardNumber services.Text `json:"cardNumber"`
	}
	if err := decodeBody(r, &req); err != nil {
		rt.writeError(w, r, "process-payment", "server.error", err)
		return
	}
	res, err := rt.payments.Process(r.Context(), req.CardNumber.String())
	if err != nil {
		rt.writeError(w, r, "process-payment", "server.error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"transactionId": res.TransactionID,
		"amount":        res.Amount,
	})
}

// POST /api/generate-access-key
func (rt *Router) handleGenerateKey(w http.ResponseWriter, r *http.Request) {
	key := rt.keys.Generate()
	rt.log.Info("access key issued",
		zap.String("req_id", middleware.RequestIDFromContext(r.Context())),
		zap.Time("expires_at", key.ExpiresAt),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"accessKey": key.Value,
		"expiry":    services.FormatTimestamp(key.ExpiresAt),
	})
}

// POST /api/register-user
// { name, email, whatsapp, accessKey }
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      services.Text `json:"name"`
		Email     services.Text `json:"email"`
		WhatsApp  services.Text `json:"whatsapp"`
		AccessKey services.Text `json:"accessKey"`
	}
	if err := decodeBody(r, &req); err != nil {
		rt.writeError(w, r, "register-user", "server.error", err)
		return
	}
	res, err := rt.register.Register(services.RegisterRequest{
		Name:      req.Name.String(),
		Email:     req.Email.String(),
		WhatsApp:  req.WhatsApp.String(),
		AccessKey: req.AccessKey.String(),
	})
	if err != nil {
		rt.writeError(w, r, "register-user", "server.error", err)
		return
	}
	rt.log.Info("user registered",
		zap.String("req_id", middleware.RequestIDFromContext(r.Context())),
		zap.String("user_id", res.UserID),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"userId":  res.UserID,
		"message": utils.T(middleware.LocaleFromContext(r.Context()), "register.ok"),
	})
}

// POST /api/generate-*-pdf and /api/generate-unified-sheet
func (rt *Router) handleDocument(kind services.DocumentKind) http.HandlerFunc {
	op := "render " + string(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r)
		if err != nil {
			rt.writeError(w, r, op, "document.render_failed", err)
			return
		}
		doc, err := rt.docs.Render(kind, body)
		if err != nil {
			rt.writeError(w, r, op, "document.render_failed", err)
			return
		}
		rt.metrics.DocumentRendered(string(kind))
		writeDocument(w, doc)
	}
}

// POST /api/collect-responses
// { courseId }
func (rt *Router) handleCollect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseID services.Text `json:"courseId"`
	}
	if err := decodeBody(r, &req); err != nil {
		rt.writeError(w, r, "collect-responses", "collect.failed", err)
		return
	}
	in, err := rt.collect.Collect(r.Context(), req.CourseID.String())
	if err != nil {
		rt.writeError(w, r, "collect-responses", "collect.failed", err)
		return
	}
	writeJSON(w, http.StatusOK, services.NewCollected(in))
}

// GET /api/health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": services.FormatTimestamp(rt.now()),
		"service":   serviceName,
	})
}

// GET /version
func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version": rt.version,
		"commit":  rt.commit,
	})
}
