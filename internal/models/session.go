package models

// SessionKeySeparator joins the source file id and the raw session id
// into a session key, so identical raw ids from different files stay
// distinct sessions.
const SessionKeySeparator = "__"

// DummySessionID is shared by AXF rows whose format carries no session column.
const DummySessionID = "dummy"

// Session groups sequential results belonging to one measurement run
type Session struct {
	ID     string `json:"id" db:"id"`
	FileID string `json:"fileId,omitempty" db:"file_id"`
	// Session id as it appeared in the source file
	RawID string `json:"rawId,omitempty" db:"raw_id"`

	Results    []*AccuracyResult `json:"results,omitempty"`
	AxfResults []*AxfResult      `json:"axfResults,omitempty"`
}

// NumResults returns the number of results of either kind in the session
func (s *Session) NumResults() int {
	return len(s.Results) + len(s.AxfResults)
}

// AccuracyResult is one measurement sample with its location candidates.
// Candidate 0 is the best candidate by producer convention.
type AccuracyResult struct {
	MsgID     string `json:"msgId" db:"msg_id"`
	Timestamp string `json:"timestamp,omitempty" db:"timestamp"`

	ReferenceLatitude  Float `json:"referenceLatitude" db:"reference_latitude"`
	ReferenceLongitude Float `json:"referenceLongitude" db:"reference_longitude"`

	Candidates []LocationCandidate `json:"candidates"`
}

// BestCandidate returns the first candidate, or nil if there is none
func (r *AccuracyResult) BestCandidate() *LocationCandidate {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// LocationCandidate is one possible computed position for a sample
type LocationCandidate struct {
	Latitude     Float `json:"latitude" db:"latitude"`
	Longitude    Float `json:"longitude" db:"longitude"`
	Distance     Float `json:"distance" db:"distance"`
	Confidence   Float `json:"confidence" db:"confidence"`
	ProbMobility Float `json:"probMobility" db:"prob_mobility"`
	ProbIndoor   Float `json:"probIndoor" db:"prob_indoor"`

	ControllerID  Float `json:"controllerId,omitempty" db:"controller_id"`
	PrimaryCellID Float `json:"primaryCellId,omitempty" db:"primary_cell_id"`
}

// AxfResult is a single AXF measurement row; AXF rows are not grouped
type AxfResult struct {
	MsgID     string `json:"msgId" db:"msg_id"`
	SessionID string `json:"sessionId" db:"session_id"`
	Timestamp string `json:"timestamp,omitempty" db:"timestamp"`

	Latitude  Float `json:"latitude" db:"latitude"`
	Longitude Float `json:"longitude" db:"longitude"`

	Confidence   Float `json:"confidence" db:"confidence"`
	ProbMobility Float `json:"probMobility" db:"prob_mobility"`
	ProbIndoor   Float `json:"probIndoor" db:"prob_indoor"`

	ControllerID  Float `json:"controllerId,omitempty" db:"controller_id"`
	PrimaryCellID Float `json:"primaryCellId,omitempty" db:"primary_cell_id"`

	ReferenceControllerID Float `json:"referenceControllerId,omitempty" db:"reference_controller_id"`
	ReferenceCellID       Float `json:"referenceCellId,omitempty" db:"reference_cell_id"`
	ConfidenceScaleFactor Float `json:"confidenceScaleFactor,omitempty" db:"confidence_scale_factor"`
}
