package playback

// Source supplies player snapshots. Implementations talk to a player over
// some protocol; a failed Fetch is reported to the caller and not retried.
type Source interface {
	Fetch() (Snapshot, error)
	Close() error
}
