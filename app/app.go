package app

import (
	"github.com/go-chi/oauth"
	"github.com/rcoury/quick-feedback/config"
	"github.com/rcoury/quick-feedback/store"
)

// App bundles the injected collaborators every controller needs: the
// storage layer, the bearer token server and the runtime configuration.
type App struct {
	Store store.Store
	*oauth.BearerServer
	config.Config
}
