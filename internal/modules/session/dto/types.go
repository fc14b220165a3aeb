package dto

type StartInput struct {
	Category    string
	DurationMin int
}

type StartOutput struct {
	RecordID    int64
	Category    string
	DurationMin int
	Date        string
}

type StatusOutput struct {
	State            string
	Category         string
	DurationMin      int
	RemainingSeconds int
	ElapsedSeconds   int
	RecordID         int64
}

type StopOutput struct {
	RecordID     int64
	CompletedMin int
	Stopped      bool // false when stop was a no-op from idle
}
