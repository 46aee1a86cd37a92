package models

// PostingAssessment is the structured verdict on whether a CV fits a posting.
type PostingAssessment struct {
	Recommendation  string   `json:"recommendation"`
	ConfidenceScore int      `json:"confidence_score"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Summary         string   `json:"summary"`
}

// ShouldApply returns true if the recommendation is to apply for the job
func (r *PostingAssessment) ShouldApply() bool {
	return r.Recommendation == "apply"
}

// IsHighConfidence returns true if the confidence score is 70 or above
func (r *PostingAssessment) IsHighConfidence() bool {
	return r.ConfidenceScore >= 70
}
