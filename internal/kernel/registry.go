package kernel

import (
	"slices"
	"sync"
)

// Registry maps kernel tags to kernel kinds and builds evaluators.
// A Registry is immutable once created and safe for concurrent use.
type Registry struct {
	kinds map[string]Kind
	caps  Capabilities
}

// NewRegistry creates a registry with every kernel registered. Kernels that
// need a backend missing from caps stay registered but fail to build with
// ErrUnsupportedKernel.
func NewRegistry(caps Capabilities) *Registry {
	r := &Registry{
		kinds: make(map[string]Kind, len(allKinds)),
		caps:  caps,
	}
	for _, k := range allKinds {
		r.kinds[k.String()] = k
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, created on first use from
// DetectCapabilities.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(DetectCapabilities())
	})
	return defaultRegistry
}

// Capabilities returns the backends available to the registry.
func (r *Registry) Capabilities() Capabilities { return r.caps }

// Supports reports whether kernels of kind k can be built.
func (r *Registry) Supports(k Kind) bool {
	if _, ok := r.kinds[k.String()]; !ok {
		return false
	}
	return !k.NeedsSpecialFunctions() || r.caps.SpecialFunctions != nil
}

// Lookup resolves a kernel tag.
func (r *Registry) Lookup(tag string) (Kind, error) {
	k, ok := r.kinds[tag]
	if !ok {
		return 0, &KernelError{Tag: tag, Err: ErrUnknownKernel}
	}
	if !r.Supports(k) {
		return 0, &KernelError{Tag: tag, Reason: "special-function backend not available", Err: ErrUnsupportedKernel}
	}
	return k, nil
}

// Kinds returns the buildable kernels in declaration order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.kinds))
	for _, k := range allKinds {
		if r.Supports(k) {
			out = append(out, k)
		}
	}
	return out
}

// Tags returns the sorted tags of the buildable kernels.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.kinds))
	for _, k := range r.Kinds() {
		tags = append(tags, k.String())
	}
	slices.Sort(tags)
	return tags
}

// New validates p and returns an evaluator with its constants bound.
func (r *Registry) New(p Params) (*Evaluator, error) {
	k := p.Kind()
	if _, err := r.Lookup(k.String()); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{params: p, fn: bind(p, r.caps.SpecialFunctions)}, nil
}
