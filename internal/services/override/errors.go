package override

import "errors"

// ErrFetchFailed hides repository details from callers of Resolve.
var ErrFetchFailed = errors.New("failed to fetch overrides")
