package dto

// TrackerBuckets is the seven-bucket counter row shown on the employer
// dashboard. Drafted counts DRAFT contests, not application rows.
type TrackerBuckets struct {
	Submitted   int64 `json:"submitted"`
	Shortlisted int64 `json:"shortlisting"`
	L1          int64 `json:"l1"`
	L2          int64 `json:"l2"`
	L3          int64 `json:"l3"`
	Offered     int64 `json:"offered"`
	Drafted     int64 `json:"drafted"`
}

// TrackerContestRow is one contest's counter row in the tracker table.
type TrackerContestRow struct {
	ContestID string          `json:"contest_id"`
	JobTitle  string          `json:"job_title"`
	Status    string          `json:"status"`
	Counters  ContestCounters `json:"counters"`
}

// TrackerResponse aggregates an employer's contests for one status tab.
type TrackerResponse struct {
	StatusTab string              `json:"status_tab"`
	Totals    TrackerBuckets      `json:"totals"`
	Contests  []TrackerContestRow `json:"contests"`
	CacheHit  bool                `json:"cache_hit,omitempty"`
}
