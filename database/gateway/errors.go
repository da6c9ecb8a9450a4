package gateway

import "fmt"

// GatewayError wraps a transport or query failure from the remote store.
type GatewayError struct {
	Op    string
	Table string
	Err   error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that a structurally required record is absent.
type NotFoundError struct {
	Table string
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record with id %q", e.Table, e.ID)
}
