package router

import (
	"net/http"

	"yo-relay/internal/common/logging"
	router "yo-relay/internal/router/common"

	"github.com/gorilla/mux"
)

// NewRouter registers every route on a mux router wrapped in the access logger.
func NewRouter(routes []router.Route) http.Handler {
	r := mux.NewRouter()
	for _, route := range routes {
		if route.Prefix {
			r.PathPrefix(route.Path).HandlerFunc(route.Handler)
			continue
		}
		r.HandleFunc(route.Path, route.Handler)
	}
	return logging.RequestLogger(r)
}
