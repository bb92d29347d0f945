package driven

import "context"

// ChangeWatcher reports changes to a set of input paths.
type ChangeWatcher interface {
	// Watch starts watching paths. Changes to the paths in ignore are not
	// reported. One value is sent on the returned channel per burst of
	// changes. The channel closes when ctx is cancelled.
	Watch(ctx context.Context, paths, ignore []string) (<-chan struct{}, error)
}
