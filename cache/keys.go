package cache

// Cache key construction lives here and nowhere else, so the population
// and invalidation sides cannot drift onto differently-spelled keys. The
// literal values are shared with existing cache instances and must not
// change.

const listKey = "all_upcoming_events"

// ListKey returns the singleton key holding the full event list.
func ListKey() string {
	return listKey
}

// ItemKey returns the per-event key for the given store identifier.
func ItemKey(id string) string {
	return "event:" + id
}
