package recommend

import "errors"

// ErrNoCandidates reports that a tier produced nothing to recommend. It never
// reaches callers of Personalized; it only drives fall-through.
var ErrNoCandidates = errors.New("no candidates")
