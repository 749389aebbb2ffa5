package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for the CLI exit path. Configuration errors
// are shown as a plain message without a stack trace, remote errors carry
// transport diagnostics.
var (
	ErrTagConfig = goerr.NewTag("config")
	ErrTagRemote = goerr.NewTag("remote")
)

var (
	// ErrNoGitHubToken is raised before any core logic runs when the API
	// token is not supplied via flag or environment.
	ErrNoGitHubToken = goerr.New("GitHub token is not set", goerr.T(ErrTagConfig))

	// ErrRepoNotInferred is raised when no repository was configured and the
	// origin remote does not point at GitHub.
	ErrRepoNotInferred = goerr.New("repository is not configured and cannot be inferred from git remotes", goerr.T(ErrTagConfig))

	// ErrNoStartingPoint is raised when neither --from nor a reachable tag
	// provides the lower bound of the commit range.
	ErrNoStartingPoint = goerr.New("no starting point: --from not given and the repository has no tags", goerr.T(ErrTagConfig))
)
