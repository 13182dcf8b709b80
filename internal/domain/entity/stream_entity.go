package entity

// Stream is a taxonomy term of the stream vocabulary: a student's
// academic track or cohort.
type Stream struct {
	ID         int64
	Vocabulary string
	Name       string
	Weight     int
}
