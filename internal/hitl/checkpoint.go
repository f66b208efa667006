package hitl

import (
	"strings"

	"github.com/alfredjeanlab/taskhelm/internal/model"
)

// postModificationMarkers are the checkpoint-name substrings known to mean
// "review of a modified plan". If the server introduces a new name for the
// same semantic it must be added here, or carried as an explicit
// review_phase tag, which takes precedence when present.
var postModificationMarkers = []string{
	"PostModifiedPlanReview",
	"ModifiedPlanReview",
	"PostModification",
}

// IsPostModification reports whether req resumes a modification round-trip.
func IsPostModification(req *model.HITLRequest) bool {
	if req == nil {
		return false
	}
	if req.ReviewPhase != model.PhaseUnspecified {
		return req.ReviewPhase == model.PhaseModifiedPlan
	}
	for _, marker := range postModificationMarkers {
		if strings.Contains(req.CheckpointName, marker) {
			return true
		}
	}
	return false
}
