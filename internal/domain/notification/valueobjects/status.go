package valueobjects

import "fmt"

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusRead    Status = "READ"
	StatusFailed  Status = "FAILED"
)

var validStatuses = map[Status]bool{
	StatusPending: true,
	StatusSent:    true,
	StatusRead:    true,
	StatusFailed:  true,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return validStatuses[s]
}

func (s Status) IsRead() bool {
	return s == StatusRead
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid status: %s", s)
	}
	return st, nil
}
