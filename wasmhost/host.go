package wasmhost

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/hostbridge/bridge"
	"github.com/wippyai/hostbridge/errors"
)

// ModuleName is the import module name guests link against.
const ModuleName = "xjni"

// Options configures a Host.
type Options struct {
	// Name overrides ModuleName.
	Name string
	// MaxString caps the byte length of strings read from guest memory.
	// Zero means no cap.
	MaxString uint32
}

// DefaultOptions returns the default host configuration.
func DefaultOptions() Options {
	return Options{Name: ModuleName, MaxString: 1 << 20}
}

// Host serves bridge operations to guest modules. Thread-safe.
type Host struct {
	bridge *bridge.Bridge
	log    *zap.Logger
	funcs  map[string]hostFunc
	envs   map[api.Module]*bridge.Env
	opts   Options
	mu     sync.Mutex
}

// New creates a host serving b.
func New(b *bridge.Bridge, opts Options) *Host {
	if opts.Name == "" {
		opts.Name = ModuleName
	}
	h := &Host{
		bridge: b,
		log:    Logger(),
		envs:   make(map[api.Module]*bridge.Env),
		opts:   opts,
	}
	h.funcs = h.functions()
	return h
}

// Namespace returns the import module name.
func (h *Host) Namespace() string { return h.opts.Name }

// Bridge returns the bridge the host serves.
func (h *Host) Bridge() *bridge.Bridge { return h.bridge }

// Instantiate registers the host module in r.
func (h *Host) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(h.opts.Name)
	for _, name := range slices.Sorted(maps.Keys(h.funcs)) {
		f := h.funcs[name]
		builder = builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(name)
	}
	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "instantiate host module "+h.opts.Name)
	}
	h.log.Debug("host module instantiated",
		zap.String("module", h.opts.Name),
		zap.Int("functions", len(h.funcs)))
	return mod, nil
}

// Env returns the Env of a guest instance, creating it on first use.
// Creating one also drops the Envs of guests that have been closed.
func (h *Host) Env(mod api.Module) *bridge.Env {
	h.mu.Lock()
	defer h.mu.Unlock()
	env, ok := h.envs[mod]
	if !ok {
		h.pruneLocked()
		env = h.bridge.NewEnv()
		h.envs[mod] = env
	}
	return env
}

func (h *Host) pruneLocked() {
	for mod := range h.envs {
		if mod.IsClosed() {
			delete(h.envs, mod)
		}
	}
}

// Forget drops the Env of a guest instance, typically after it is closed.
func (h *Host) Forget(mod api.Module) {
	h.mu.Lock()
	delete(h.envs, mod)
	h.mu.Unlock()
}

// Guests returns the number of open guest instances with an Env.
func (h *Host) Guests() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pruneLocked()
	return len(h.envs)
}
