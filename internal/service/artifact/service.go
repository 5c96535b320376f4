package artifact

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/artifact"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/storage"
)

type artifactServiceImpl struct {
	storage storage.FileStorage
}

func NewArtifactService(storage storage.FileStorage) artifact.ArtifactService {
	return &artifactServiceImpl{
		storage: storage,
	}
}

// Save stores the artifact under "<visibility>/<fileName>". Only public
// artifacts get a URL; private ones are addressed by key.
func (s *artifactServiceImpl) Save(ctx context.Context, fileName, contentType string, data []byte, visibility artifact.Visibility) (artifact.Stored, error) {
	if !artifact.IsValidFileName(fileName) {
		return artifact.Stored{}, fmt.Errorf("%w: %q", artifact.ErrInvalidFileName, fileName)
	}
	if !visibility.IsValid() {
		return artifact.Stored{}, fmt.Errorf("%w: %q", artifact.ErrInvalidVisibility, visibility)
	}
	if len(data) == 0 {
		return artifact.Stored{}, artifact.ErrEmptyArtifact
	}

	key, err := s.storage.Upload(ctx, bytes.NewReader(data), path.Join(string(visibility), fileName), contentType)
	if err != nil {
		return artifact.Stored{}, fmt.Errorf("%w: %v", artifact.ErrArtifact, err)
	}

	stored := artifact.Stored{Key: key, FileName: fileName, Visibility: visibility}
	if visibility == artifact.VisibilityPublic {
		url, err := s.storage.GetURL(ctx, key)
		if err != nil {
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				slog.Warn("Artifact: failed to remove orphaned file", "key", key, "error", delErr)
			}
			return artifact.Stored{}, fmt.Errorf("%w: %v", artifact.ErrArtifact, err)
		}
		stored.URL = url
	}

	slog.Info("Artifact: saved", "key", key, "visibility", visibility, "bytes", len(data))
	return stored, nil
}

func (s *artifactServiceImpl) Delete(ctx context.Context, stored artifact.Stored) error {
	if err := s.storage.Delete(ctx, stored.Key); err != nil {
		return fmt.Errorf("%w: %v", artifact.ErrArtifact, err)
	}
	return nil
}
