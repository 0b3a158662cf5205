package repotypes

import "time"

type AlertFilter struct {
	Type  string
	Level string
	From  time.Time
	To    time.Time
	Limit int
}
