package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Views (the presentation boundary)
	vh := ViewsHandler{Session: d.Session}
	mux.HandleFunc("/views", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: vh.List,
	}))
	mux.HandleFunc("/views/", vh.ByPath) // GET snapshot + POST events

	// Sources
	srh := SourcesHandler{Session: d.Session, DB: d.DB}
	mux.HandleFunc("/sources/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.Status,
	}))
	mux.HandleFunc("/sources/history", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srh.History,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		OnReload:    d.OnCfgReload,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sh := SecretsHandler{Tokens: d.Tokens}
	mux.HandleFunc("/api/secrets/source", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSourceToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
