package httpserver

import "net/http"

// Routes defines HTTP endpoints.
type Routes struct {
	RunPass       http.Handler
	Rebase        http.Handler
	Subscriptions http.Handler
	Notifications http.Handler
	Latest        http.Handler
	Alerts        http.Handler
	Health        http.Handler
}

// NewRouter sets up HTTP routing.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.RunPass != nil {
		mux.Handle("/internal/polling/run", method(http.MethodPost, routes.RunPass.ServeHTTP))
	}
	if routes.Rebase != nil {
		mux.Handle("/internal/sensors/rebase", method(http.MethodPost, routes.Rebase.ServeHTTP))
	}
	if routes.Subscriptions != nil {
		mux.Handle("/subscriptions", routes.Subscriptions)
		mux.Handle("/subscriptions/", routes.Subscriptions)
	}
	if routes.Notifications != nil {
		mux.Handle("/notifications", method(http.MethodGet, routes.Notifications.ServeHTTP))
	}
	if routes.Latest != nil {
		mux.Handle("/sensors/", method(http.MethodGet, routes.Latest.ServeHTTP))
	}
	if routes.Alerts != nil {
		mux.Handle("/ws/alerts", method(http.MethodGet, routes.Alerts.ServeHTTP))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health.ServeHTTP))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
