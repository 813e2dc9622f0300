package circulation

import "context"

// Notifier delivers a message to a patron. Delivery is fire-and-forget, failures never
// affect the command that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, patron Patron, message string)
}
