package webhook

import (
	"github.com/drydockhq/drydock/pkg/db/models"
)

// Eligible returns the subscriptions that should receive an event, in
// their original order. Subscriptions with an empty payload URL never
// receive anything. When enforceScope is set, issue and pull request
// events go only to all-events subscriptions; otherwise scope is
// advisory and every subscription receives every event.
func Eligible(subs []models.Webhook, event Event, enforceScope bool) []models.Webhook {
	eligible := make([]models.Webhook, 0, len(subs))
	for _, sub := range subs {
		if sub.URL == "" {
			continue
		}
		if enforceScope && event != EventPush && Scope(sub.Scope) != ScopeAllEvents {
			continue
		}
		eligible = append(eligible, sub)
	}

	return eligible
}
