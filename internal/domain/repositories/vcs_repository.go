package repositories

// VCSRepository abstracts committing rewritten files to the enclosing
// version control repository.
type VCSRepository interface {
	// CommitFiles stages the given files and commits them on the current
	// branch with the given message. Returns the commit hash.
	CommitFiles(paths []string, message string) (string, error)
}
