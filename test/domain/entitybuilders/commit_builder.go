//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"strings"
	"time"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommitBuilder helps create raw test commits with a fluent interface.
type CommitBuilder struct {
	*testkit.BaseBuilder
	hash   string
	header string
	body   []string
	date   time.Time
}

// NewCommitBuilder creates a new commit builder with sensible defaults.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hash:        "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
		header:      "Other: Updated the readme.",
		date:        time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
}

// WithHash sets the commit hash.
func (b *CommitBuilder) WithHash(hash string) *CommitBuilder {
	b.hash = hash
	return b
}

// WithHeader sets the first line of the message.
func (b *CommitBuilder) WithHeader(header string) *CommitBuilder {
	b.header = header
	return b
}

// WithBodyLine appends a line to the message body.
func (b *CommitBuilder) WithBodyLine(line string) *CommitBuilder {
	b.body = append(b.body, line)
	return b
}

// WithDate sets the commit date.
func (b *CommitBuilder) WithDate(date time.Time) *CommitBuilder {
	b.date = date
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() entities.Commit {
	message := b.header
	if len(b.body) > 0 {
		message += "\n\n" + strings.Join(b.body, "\n")
	}
	return entities.Commit{Hash: b.hash, Message: message, Date: b.date}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.hash = "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"
	b.header = "Other: Updated the readme."
	b.body = nil
	b.date = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hash:        b.hash,
		header:      b.header,
		body:        append([]string(nil), b.body...),
		date:        b.date,
	}
}
