package models

// BlockKind tags what occupies a span of time in the generated timetable.
type BlockKind string

const (
	BlockCompulsory BlockKind = "COMPULSORY"
	BlockSchool     BlockKind = "SCHOOL"
	BlockActivity   BlockKind = "ACTIVITY"
	BlockBreak      BlockKind = "BREAK"
)

// Block is one scheduled span of time on a single day. Start and End are
// HH:MM strings with Start < End; both lie within [00:00, 23:59].
type Block struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Name  string    `json:"name"`
	Kind  BlockKind `json:"type"`
}
