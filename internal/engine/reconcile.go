package engine

// Reconcile merges a remote snapshot into the local record with the coarse
// "most total progress wins" heuristic: when the remote total is strictly
// greater the whole remote record replaces the local one, local-only fields
// included. No field-level merge; a higher local streak loses along with
// everything else. Returns the record to keep and whether the remote was
// adopted.
func Reconcile(local, remote *ProgressRecord) (*ProgressRecord, bool) {
	if remote == nil {
		return local, false
	}
	if remote.ScoreTotal <= local.ScoreTotal {
		return local, false
	}
	merged := remote.Clone()
	merged.normalize()
	return merged, true
}
