package artifact

import "strings"

// Visibility decides whether a stored artifact is served publicly.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Stored describes a persisted artifact.
type Stored struct {
	Key        string
	FileName   string
	URL        string
	Visibility Visibility
}

// IsValidFileName rejects names that would nest directories or hide files.
func IsValidFileName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
