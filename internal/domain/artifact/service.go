package artifact

import "context"

type ArtifactService interface {
	// Save persists data under fileName and returns where it can be fetched.
	Save(ctx context.Context, fileName, contentType string, data []byte, visibility Visibility) (Stored, error)

	// Delete removes a previously saved artifact.
	Delete(ctx context.Context, stored Stored) error
}
