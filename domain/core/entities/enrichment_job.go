package entities

// EnrichmentJob asks the enrichment worker to fill in a movie. Payload is the
// record as it was when the job was produced.
type EnrichmentJob struct {
	MovieID string `json:"movieId"`
	Action  string `json:"action"`
	Payload *Movie `json:"payload"`
}

// NewEnrichmentJob snapshots movie into a job
func NewEnrichmentJob(movie *Movie, action string) EnrichmentJob {
	return EnrichmentJob{
		MovieID: movie.ID,
		Action:  action,
		Payload: movie.Clone(),
	}
}

// IsSupersededBy reports whether current no longer matches the snapshot the
// job was produced from, in which case a newer job exists for it.
func (j EnrichmentJob) IsSupersededBy(current *Movie) bool {
	if j.Payload == nil {
		return false
	}
	if current.Title != j.Payload.Title {
		return true
	}
	switch {
	case current.Year == nil && j.Payload.Year == nil:
		return false
	case current.Year == nil || j.Payload.Year == nil:
		return true
	default:
		return *current.Year != *j.Payload.Year
	}
}
