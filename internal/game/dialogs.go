package game

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
)

// Dialogs asks the user for a screenshot destination.
type Dialogs interface {
	// SaveScreenshot returns the chosen path, or "" when the user cancels.
	SaveScreenshot(suggested string) (string, error)
}

type zenityDialogs struct{}

func (zenityDialogs) SaveScreenshot(suggested string) (string, error) {
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save screenshot"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(filename), ".png") {
		filename += ".png"
	}
	return filename, nil
}
