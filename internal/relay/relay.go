package relay

import (
	"net/http"

	"yo-relay/internal/common/config"
	"yo-relay/internal/common/logging"
	router "yo-relay/internal/router/common"
	"yo-relay/internal/webhook"
	"yo-relay/internal/yo"
)

const (
	msgParametersMissing = "Parameters are missing"
	msgUsernameRequired  = "Username is required"
	msgDeliveryFailed    = "Delivery failed"
	msgYo                = "Yo"
)

type relay struct {
	Webhook               *webhook.Client
	SurfaceDeliveryErrors bool
}

// Routes returns a single catch-all route; the relay answers on every path.
func Routes(cfg *config.Config) ([]router.Route, error) {
	_, routes, err := routes(cfg)
	return routes, err
}

func routes(cfg *config.Config) (*relay, []router.Route, error) {
	if cfg == nil || cfg.Endpoint == "" {
		logging.Log(logging.Error, "Unable to load relay due to missing endpoint")
		return nil, []router.Route{}, config.ErrMissingEndpoint
	}

	r := &relay{
		Webhook:               webhook.New(cfg.Endpoint, cfg.Timeout()),
		SurfaceDeliveryErrors: cfg.SurfaceDeliveryErrors,
	}

	routes := []router.Route{
		{Path: "/", Prefix: true, Handler: r.handler},
	}
	return r, routes, nil
}

func textResponse(w http.ResponseWriter, httpCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(httpCode)
	w.Write([]byte(message))
}

func (rl *relay) handler(w http.ResponseWriter, r *http.Request) {
	httpCode, message := http.StatusOK, msgYo

	defer func() {
		textResponse(w, httpCode, message)
	}()

	if r.URL.RawQuery == "" && !r.URL.ForceQuery {
		httpCode, message = http.StatusBadRequest, msgParametersMissing
		return
	}

	payload, ok := yo.BuildPayload(yo.Parse(r.URL.RawQuery))
	if !ok {
		httpCode, message = http.StatusBadRequest, msgUsernameRequired
		return
	}

	responseCode, err := rl.Webhook.Post(r.Context(), payload)
	if err != nil {
		logging.Log(logging.Error, "Webhook delivery failed (status %d): %v", responseCode, err)
		if rl.SurfaceDeliveryErrors {
			httpCode, message = http.StatusBadGateway, msgDeliveryFailed
		}
		return
	}

	logging.Log(logging.Info, "Webhook delivery succeeded (status %d)", responseCode)
}
