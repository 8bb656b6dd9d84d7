package httpapi

import (
	"database/sql"
	"sync/atomic"

	"bazaar-engine/internal/config"
	"bazaar-engine/internal/events"
	"bazaar-engine/internal/view"
)

// TokenWriter stores per-source access tokens (keychain-backed in
// production; faked in tests).
type TokenWriter interface {
	SetToken(sourceName, token string) error
}

type Deps struct {
	Session *view.Session
	Hub     *events.Hub
	DB      *sql.DB // fetch journal

	// Atomic store of config.Config, hot-reloadable
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
	// OnCfgReload lets main rebuild the session when config changes.
	OnCfgReload func(config.Config)

	Tokens TokenWriter
}
