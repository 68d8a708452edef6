package cli

import (
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func confirmHint(err error) error {
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return fmt.Errorf("%w (rerun with --yes)", err)
	}
	return err
}
