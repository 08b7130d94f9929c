package entities

const (
	envCIMarker          = "TRAVIS"
	envPullRequestCommit = "TRAVIS_PULL_REQUEST_SHA"
	envCommit            = "TRAVIS_COMMIT"
)

// Environment is the process environment captured once at start-up.
// Commands receive it explicitly and never read variables themselves.
type Environment struct {
	CI                bool
	PullRequestCommit string
	Commit            string
	WorkingDirectory  string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// NewEnvironment builds an Environment from the given lookup function.
func NewEnvironment(lookup LookupFunc, workingDirectory string) Environment {
	value := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	ci, found := lookup(envCIMarker)
	return Environment{
		CI:                found && ci != "" && ci != "false",
		PullRequestCommit: value(envPullRequestCommit),
		Commit:            value(envCommit),
		WorkingDirectory:  workingDirectory,
	}
}

// TestedCommit returns the commit a pull request build should check out:
// the PR head when available, the merge commit otherwise.
func (e Environment) TestedCommit() string {
	if e.PullRequestCommit != "" {
		return e.PullRequestCommit
	}
	return e.Commit
}
