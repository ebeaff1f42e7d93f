package payments

import (
	"errors"
)

var (
	// ErrUnsupportedMethod is returned when no gateway is configured for
	// the requested payment method key.
	ErrUnsupportedMethod = errors.New("unsupported payment method")

	// ErrMisconfiguredGateway is returned when a configured factory
	// produces a value that does not satisfy the Gateway interface. This
	// is a configuration fault, never a user error.
	ErrMisconfiguredGateway = errors.New("invalid payment gateway configuration")
)

// defaultMethods maps payment method keys to gateway factories. The table
// is built once at startup and never mutated at runtime. Factories are
// typed loosely so a bad registration is caught by Resolve rather than
// silently substituted.
func defaultMethods() map[string]func() interface{} {
	return map[string]func() interface{}{
		"credit_card": func() interface{} { return NewCreditCardGateway() },
		"paypal":      func() interface{} { return NewPaypalGateway() },
	}
}

// Resolver maps payment method keys to concrete gateway instances.
type Resolver struct {
	methods map[string]func() interface{}
}

// NewResolver returns a resolver over the default method table.
func NewResolver() *Resolver {
	return &Resolver{methods: defaultMethods()}
}

// NewResolverWithMethods returns a resolver over a custom method table.
func NewResolverWithMethods(methods map[string]func() interface{}) *Resolver {
	return &Resolver{methods: methods}
}

// Resolve looks up and instantiates the gateway for a method key.
func (r *Resolver) Resolve(method string) (Gateway, error) {
	factory, ok := r.methods[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}

	gateway, ok := factory().(Gateway)
	if !ok {
		return nil, ErrMisconfiguredGateway
	}

	return gateway, nil
}

// Supports reports whether a method key has a configured gateway.
func (r *Resolver) Supports(method string) bool {
	_, ok := r.methods[method]
	return ok
}

// Methods returns the configured method keys.
func (r *Resolver) Methods() []string {
	keys := make([]string, 0, len(r.methods))
	for key := range r.methods {
		keys = append(keys, key)
	}
	return keys
}
