package api

import (
	"net/http"
	"time"

	"github.com/soaringjerry/ec0301/internal/metrics"
	"github.com/soaringjerry/ec0301/internal/services"
	"go.uber.org/zap"
)

const serviceName = "EC0301 Generator Pro"

// Options configures the API router. Zero values pick working defaults.
type Options struct {
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	PaymentDelay time.Duration
	AnswerKeys   services.AnswerKeyStore
	Catalog      *services.Catalog
	Version      string
	Commit       string
}

type Router struct {
	docs     *services.DocumentService
	keys     *services.AccessKeyService
	register *services.RegistrationService
	payments *services.PaymentService
	collect  *services.ResponseAggregator

	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	version string
	commit  string
}

func NewRouter(opts Options) *Router {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	store := opts.AnswerKeys
	if store == nil {
		store = services.NewDemoAnswerKeys()
	}
	keys := services.NewAccessKeyService()
	return &Router{
		docs:     services.NewDocumentService(opts.Catalog),
		keys:     keys,
		register: services.NewRegistrationService(keys),
		payments: services.NewPaymentService(opts.PaymentDelay),
		collect:  services.NewResponseAggregator(store),
		log:      log,
		metrics:  opts.Metrics,
		now:      func() time.Time { return time.Now().UTC() },
		version:  opts.Version,
		commit:   opts.Commit,
	}
}

// documentRoutes maps each generate endpoint to the document it renders.
var documentRoutes = []struct {
	path string
	kind services.DocumentKind
}{
	{"/api/generate-diag-pdf", services.KindDiagnostic},
	{"/api/generate-sumativa-pdf", services.KindSummative},
	{"/api/generate-satisfaction-pdf", services.KindSatisfaction},
	{"/api/generate-attendance-pdf", services.KindAttendance},
	{"/api/generate-contract-pdf", services.KindContract},
	{"/api/generate-checklist-pdf", services.KindChecklist},
	{"/api/generate-unified-sheet", services.KindUnified},
}

func (rt *Router) Register(mux *http.ServeMux) {
	rt.handle(mux, "POST /api/process-payment", "process-payment", rt.handlePayment)
	rt.handle(mux, "POST /api/generate-access-key", "generate-access-key", rt.handleGenerateKey)
	rt.handle(mux, "POST /api/register-user", "register-user", rt.handleRegister)
	for _, d := range documentRoutes {
		rt.handle(mux, "POST "+d.path, string(d.kind), rt.handleDocument(d.kind))
	}
	rt.handle(mux, "POST /api/collect-responses", "collect-responses", rt.handleCollect)
	rt.handle(mux, "GET /api/health", "health", rt.handleHealth)
	rt.handle(mux, "GET /version", "version", rt.handleVersion)
}

func (rt *Router) handle(mux *http.ServeMux, pattern, name string, h http.HandlerFunc) {
	mux.Handle(pattern, rt.metrics.Wrap(name, h))
}
