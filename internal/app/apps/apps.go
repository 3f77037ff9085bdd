// Package apps wires configuration, transport and protocol packages into
// runnable applications.
package apps

import "context"

// App is a runnable application.
type App interface {
	Run(ctx context.Context, args []string) error
}
