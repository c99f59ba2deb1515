// Package options implements the generic functional options shared by the
// encoder, navigator, path, JSON and frame configurations.
//
// Each package defines its own Config type and exposes an alias
//
//	type Option = options.Option[*Config]
//
// so callers never import this package directly.
package options

// Option configures a value of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is an Option backed by a function.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error. Nil
// options are skipped, so callers can pass conditionally built option lists.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// Build applies opts to a default configuration and returns it.
//
// Example:
//
//	cfg, err := options.Build(&Config{strictUTF8: false}, opts...)
func Build[T any](defaults T, opts ...Option[T]) (T, error) {
	if err := Apply(defaults, opts...); err != nil {
		var zero T
		return zero, err
	}

	return defaults, nil
}
