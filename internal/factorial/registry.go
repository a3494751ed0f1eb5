package factorial

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory is an interface for creating Calculator instances.
// It allows for flexible calculator instantiation and registration,
// enabling dependency injection and easier testing.
type CalculatorFactory interface {
	// Get returns a Calculator instance by name.
	// Returns an error if the calculator type is not registered.
	Get(name string) (Calculator, error)

	// List returns a sorted list of registered calculator names.
	List() []string

	// Register adds a new calculator type to the factory.
	Register(name string, creator func() coreCalculator) error

	// GetAll returns a map of all registered calculators.
	GetAll() map[string]Calculator
}

// DefaultFactory is the default implementation of CalculatorFactory.
// It maintains a thread-safe registry of strategy creators and caches
// Calculator instances for reuse.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory creates a new DefaultFactory with the standard execution
// strategies pre-registered.
//
// Pre-registered calculators:
//   - "sequential": SequentialRange (single goroutine, ascending fold)
//   - "windowed": WindowedParallel (bounded workers, out-of-order fold)
//   - "gmp": GMPWindowed (only with the gmp build tag)
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator),
		calculators: make(map[string]Calculator),
	}

	_ = f.Register("sequential", func() coreCalculator { return &SequentialRange{} })
	_ = f.Register("windowed", func() coreCalculator { return &WindowedParallel{} })

	// Build-tagged strategies registered via the global factory are carried
	// over so opt-in builds expose them without further wiring.
	globalFactory.mu.RLock()
	for name, creator := range globalFactory.creators {
		if _, exists := f.creators[name]; !exists {
			f.creators[name] = creator
		}
	}
	globalFactory.mu.RUnlock()

	return f
}

// Register adds a new calculator type to the factory. The creator function is
// called lazily when the calculator is first requested. Registering an
// existing name replaces the previous creator.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	// Drop any cached instance so it is recreated with the new creator.
	delete(f.calculators, name)
	return nil
}

// Get returns a Calculator instance by name. Instances are cached and reused
// for subsequent calls with the same name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	if calc, exists := f.calculators[name]; exists {
		f.mu.RUnlock()
		return calc, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring the write lock.
	if calc, exists := f.calculators[name]; exists {
		return calc, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown calculator: %s", name)
	}

	calc := NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// List returns a sorted list of all registered calculator names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a map of all registered calculators, lazily initializing any
// that have not been created yet. The returned map is a copy.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.calculators[name]; !exists {
			f.calculators[name] = NewCalculator(creator())
		}
	}

	result := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		result[name] = calc
	}
	return result
}

// globalFactory collects build-tagged strategy registrations performed in
// init functions before NewDefaultFactory runs.
var globalFactory = &DefaultFactory{
	creators:    make(map[string]func() coreCalculator),
	calculators: make(map[string]Calculator),
}

// RegisterCalculator registers a strategy in the global factory.
// This is how build-tagged files (e.g. the GMP strategy) add themselves.
func RegisterCalculator(name string, creator func() coreCalculator) error {
	return globalFactory.Register(name, creator)
}
