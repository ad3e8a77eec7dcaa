// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists rendered Markdown.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// ErrWriteFailure reports that the destination could not be created or
// written. The underlying I/O error is wrapped alongside it.
var ErrWriteFailure = errors.New("cannot write file")

const filePerms = 0o644

// SaveText creates or replaces the file at path with text, byte for byte.
// The content is staged in a temporary file next to path and renamed into
// place, so a failed write leaves any previous file untouched. An existing
// symlink is written through to its target.
func SaveText(path, text string) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if existed {
		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrWriteFailure, path, err)
		}
		path = resolved
	}

	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteFailure, path, err)
	}

	// atomic.WriteFile leaves new files with the temp file's 0600 mode.
	if !existed {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("%w %s: %w", ErrWriteFailure, path, err)
		}
	}
	return nil
}
