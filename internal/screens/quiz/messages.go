package quiz

import (
	"time"

	"github.com/abhisek/learnboard/internal/attempt"
)

// clockTickMsg is sent every second while the attempt is running. It
// carries its attempt so a tick from an abandoned attempt is ignored.
type clockTickMsg struct {
	attempt *attempt.Attempt
	at      time.Time
}

// submittedMsg reports the outcome of scoring and recording the attempt.
// Save is set once the attempt is scored, even when recording failed.
type submittedMsg struct {
	Save *attempt.Save
	Auto bool
	Err  error
}
