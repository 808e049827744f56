package rubric

// NeedsRevision reports whether any of the six categories failed.
// Suggestions never influence the decision.
func NeedsRevision(v Verdict) bool {
	for _, c := range Categories {
		if v.Status(c) == Fail {
			return true
		}
	}
	return false
}
