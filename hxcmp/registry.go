package hxcmp

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Registry mounts components and owns the props encoder.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent
	logger     *slog.Logger

	// OnError writes the response when a component request fails.
	// Replace it to render application error pages.
	OnError ErrorHandler
}

// NewRegistry creates a registry whose props are signed/encrypted with key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxcmp: failed to create encoder: %v", err))
	}

	reg := &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		logger:     slog.Default(),
	}
	reg.OnError = reg.logError
	return reg
}

// SetLogger replaces the logger used by the default error handler.
func (reg *Registry) SetLogger(logger *slog.Logger) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.logger = logger
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components. It panics on a prefix collision.
func (reg *Registry) Add(components ...Registrable) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("hxcmp: prefix collision for %q", prefix))
		}
		comp.attach(reg.encoder, func(w http.ResponseWriter, r *http.Request, err error) {
			reg.OnError(w, r, err)
		})
		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
	}
}

// Handler returns the handler for component routes; mount it at "/_c/".
//
// Mutating methods require the HX-Request header HTMX always sends, which
// browsers will not attach to a cross-origin form post.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !isHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}

func (reg *Registry) logError(w http.ResponseWriter, r *http.Request, err error) {
	reg.mu.RLock()
	logger := reg.logger
	reg.mu.RUnlock()

	logger.Error("component request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	defaultOnError(w, r, err)
}

func defaultOnError(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsDecryptionError(err), IsFormatError(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// isHTMX reports whether the request came from HTMX.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
