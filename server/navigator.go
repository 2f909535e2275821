package server

import (
	"strings"

	apperrors "github.com/jrsteele09/uigen-server/internal/errors"
)

// recordingNavigator captures the destination chosen for the client. The
// handler turns it into a redirect once the workflow has finished.
type recordingNavigator struct {
	path string
}

func (n *recordingNavigator) NavigateTo(path string) error {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return apperrors.Wrapf(apperrors.ErrInvalidPath, "navigate to %q", path)
	}
	n.path = path
	return nil
}
