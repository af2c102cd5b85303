package common

import "net/http"

// Route binds a handler to Path. When Prefix is set the handler serves every
// path beneath Path as well.
type Route struct {
	Path    string
	Prefix  bool
	Handler func(http.ResponseWriter, *http.Request)
}
