package commands

import "time"

// SetClock replaces the clock of a ChangelogCommand for testing.
func SetClock(command *ChangelogCommand, now func() time.Time) {
	command.now = now
}
