package ecidata

import "encoding/json"

// CandidateVotes holds the votes received by one candidate.
type CandidateVotes struct {
	Candidate string `json:"candidate"`
	Party     string `json:"party"`
	Votes     int    `json:"votes"`
}

// Validate returns an error if the candidate row contains invalid fields.
func (cv CandidateVotes) Validate() error {
	if cv.Candidate == "" {
		return Errorf(EINVALID, "candidate name required")
	}
	if cv.Party == "" {
		return Errorf(EINVALID, "party name required for candidate %q", cv.Candidate)
	}
	if cv.Votes < 0 {
		return Errorf(EINVALID, "negative vote count %d for candidate %q", cv.Votes, cv.Candidate)
	}
	return nil
}

// ConstituencyResult holds the results for one constituency.
// It is immutable once constructed.
type ConstituencyResult struct {
	state        string
	constituency string
	votes        []CandidateVotes
	declared     bool
}

// NewConstituencyResult returns a result for the given constituency.
// Candidate rows keep the order given. The slice is copied.
func NewConstituencyResult(state, constituency string, votes []CandidateVotes, declared bool) *ConstituencyResult {
	cp := make([]CandidateVotes, len(votes))
	copy(cp, votes)
	return &ConstituencyResult{
		state:        state,
		constituency: constituency,
		votes:        cp,
		declared:     declared,
	}
}

// State returns the state name.
func (r *ConstituencyResult) State() string { return r.state }

// Constituency returns the constituency name.
func (r *ConstituencyResult) Constituency() string { return r.constituency }

// Declared reports whether counting has concluded.
func (r *ConstituencyResult) Declared() bool { return r.declared }

// CandidateVotes returns a copy of the candidate rows in source order.
func (r *ConstituencyResult) CandidateVotes() []CandidateVotes {
	cp := make([]CandidateVotes, len(r.votes))
	copy(cp, r.votes)
	return cp
}

// Len returns the number of candidate rows.
func (r *ConstituencyResult) Len() int { return len(r.votes) }

// TotalVotes returns the sum of votes over all candidates.
func (r *ConstituencyResult) TotalVotes() int {
	var total int
	for _, cv := range r.votes {
		total += cv.Votes
	}
	return total
}

// VotesForParty returns the votes received by all candidates of party.
func (r *ConstituencyResult) VotesForParty(party string) int {
	var total int
	for _, cv := range r.votes {
		if cv.Party == party {
			total += cv.Votes
		}
	}
	return total
}

// Leader returns the candidate with the most votes.
// Ties go to the candidate listed first.
func (r *ConstituencyResult) Leader() (CandidateVotes, bool) {
	if len(r.votes) == 0 {
		return CandidateVotes{}, false
	}
	leader := r.votes[0]
	for _, cv := range r.votes[1:] {
		if cv.Votes > leader.Votes {
			leader = cv
		}
	}
	return leader, true
}

// Margin returns the leader's lead over the runner-up.
func (r *ConstituencyResult) Margin() int {
	var first, second int
	for _, cv := range r.votes {
		switch {
		case cv.Votes > first:
			first, second = cv.Votes, first
		case cv.Votes > second:
			second = cv.Votes
		}
	}
	return first - second
}

type constituencyResultJSON struct {
	State          string           `json:"state"`
	Constituency   string           `json:"constituency"`
	Declared       bool             `json:"declared"`
	TotalVotes     int              `json:"totalVotes"`
	CandidateVotes []CandidateVotes `json:"candidateVotes"`
}

// MarshalJSON implements json.Marshaler.
func (r *ConstituencyResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(constituencyResultJSON{
		State:          r.state,
		Constituency:   r.constituency,
		Declared:       r.declared,
		TotalVotes:     r.TotalVotes(),
		CandidateVotes: r.CandidateVotes(),
	})
}
