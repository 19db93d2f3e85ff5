package interfaces

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// ChatClient announces releases on the team chat
type ChatClient interface {
	AnnounceRelease(ctx context.Context, announcement *model.ReleaseAnnouncement) error
}
