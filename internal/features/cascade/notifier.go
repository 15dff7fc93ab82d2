package cascade

// Notifier receives the summary of a committed cascade so downstream
// consumers (webhooks, audit trails) can fan out change events.
type Notifier interface {
	NotifyCascadeApplied(summary *AppliedSummary)
}
