package cli

import (
	"fmt"
	"sync"

	"github.com/semmy-space/coda/internal/output"
	"github.com/semmy-space/coda/internal/secrets"
)

// SessionProvider lazily opens the session store on first use, so commands
// that never touch the session never probe the keyring.
type SessionProvider struct {
	open func() (secrets.Store, error)

	once    sync.Once
	session *secrets.Session
	err     error
}

// NewSessionProvider opens the platform store via secrets.NewStore.
func NewSessionProvider() *SessionProvider {
	return &SessionProvider{open: secrets.NewStore}
}

// NewSessionProviderFrom always uses store.
func NewSessionProviderFrom(store secrets.Store) *SessionProvider {
	return &SessionProvider{open: func() (secrets.Store, error) { return store, nil }}
}

// Session returns the session, opening the store on first call.
func (sp *SessionProvider) Session() (*secrets.Session, error) {
	sp.once.Do(func() {
		store, err := sp.open()
		if err != nil {
			sp.err = output.Wrap(output.ExitGeneral,
				fmt.Sprintf("Failed to initialize session store: %v", err), err)
			return
		}
		sp.session = secrets.NewSession(store)
	})
	return sp.session, sp.err
}
