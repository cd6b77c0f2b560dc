package transcribe

import "clipcaption/types"

// CanTransition reports whether a project status edge is legal:
//
//	processing -> ready | failed
//	ready      -> processing (new transcription attempt)
//	failed     -> processing (retry)
//
// Notably failed -> ready without a new attempt is illegal. The remote store
// itself is last-write-wins; this table is enforced at the workflow level so
// illegal transitions are detectable in tests.
func CanTransition(from, to types.ProjectStatus) bool {
	switch from {
	case types.StatusProcessing:
		return to == types.StatusReady || to == types.StatusFailed
	case types.StatusReady, types.StatusFailed:
		return to == types.StatusProcessing
	default:
		return false
	}
}
