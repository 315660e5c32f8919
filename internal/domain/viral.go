package domain

// ViralSegment is one candidate excerpt ranked by viral potential.
// Ranks are unique and dense starting at 1; the score is advisory and is not
// guaranteed to be monotonic with rank (the model may violate this).
type ViralSegment struct {
	Rank       int    `json:"rank"`
	Score      int    `json:"score"`
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Timestamps string `json:"timestamps"`
	ViralType  string `json:"viral_type"`
	Reason     string `json:"reason"`
}

// SelectedSegment is the ranking model's own nomination, referenced by rank.
type SelectedSegment struct {
	Rank   int    `json:"rank"`
	Reason string `json:"reason"`
}

// ViralAnalysis holds the ranked candidate list plus the model's nomination
// for the automatic selection flow.
type ViralAnalysis struct {
	Segments []ViralSegment  `json:"segments"`
	Selected SelectedSegment `json:"selected"`
}

// SegmentByRank returns the segment with the given rank, or nil when no
// candidate carries that rank.
func (a *ViralAnalysis) SegmentByRank(rank int) *ViralSegment {
	for i := range a.Segments {
		if a.Segments[i].Rank == rank {
			return &a.Segments[i]
		}
	}
	return nil
}
