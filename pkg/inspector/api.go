package inspector

import (
	"net/http"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// API serves metrics and the status of the running inspector.
type API struct {
	cfg     *Config
	stats   *Stats
	logger  log.Logger
	started time.Time
	http.Handler
}

func NewAPI(cfg *Config, stats *Stats, logger log.Logger) *API {
	a := &API{cfg: cfg, stats: stats, logger: logger, started: time.Now()}
	r := mux.NewRouter()
	a.RegisterRoutes(r)
	a.Handler = r
	return a
}

// RegisterRoutes registers the admin HTTP routes with the provided Router.
func (a *API) RegisterRoutes(r *mux.Router) {
	for _, route := range []struct {
		name, method, path string
		handler            http.Handler
	}{
		{"metrics", "GET", "/metrics", promhttp.Handler()},
		{"healthz", "GET", "/healthz", http.HandlerFunc(a.healthz)},
		{"get_status", "GET", "/api/v1/status", http.HandlerFunc(a.getStatus)},
	} {
		r.Handle(route.path, route.handler).Methods(route.method).Name(route.name)
	}
}

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Status is the body of GET /api/v1/status.
type Status struct {
	ListenAddress string        `json:"listenAddress"`
	Pretty        bool          `json:"pretty"`
	Uptime        string        `json:"uptime"`
	Connections   StatsSnapshot `json:"connections"`
}

func (a *API) getStatus(w http.ResponseWriter, r *http.Request) {
	status := Status{
		ListenAddress: a.cfg.ListenAddress(),
		Pretty:        a.cfg.Pretty,
		Uptime:        time.Since(a.started).Round(time.Second).String(),
		Connections:   a.stats.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		level.Error(a.logger).Log("msg", "error encoding status", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
