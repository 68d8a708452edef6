package notify

import (
	"context"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

var _ domain.Notifier = (*LogNotifier)(nil)

// LogNotifier writes notifications to the log. It is the fallback when no
// Redis channel is configured.
type LogNotifier struct {
	enabled bool
	logger  *log.Logger
}

func NewLogNotifier(enabled bool, logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Discard()
	}
	return &LogNotifier{enabled: enabled, logger: logger.WithComponent(log.ComponentNotify)}
}

func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.enabled, nil
}

func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) error {
	n.logger.InfoContext(ctx, note.Title, "body", note.Body, "icon", note.Icon)
	return nil
}
