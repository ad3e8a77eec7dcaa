// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xmind

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories surfaced by Open, ReadTopic and ParseContent. Callers
// distinguish them with errors.Is; the wrapped message is meant for users.
var (
	ErrInvalidExtension        = errors.New("please choose a .xmind file")
	ErrFileOpen                = errors.New("cannot open file")
	ErrCorruptArchive          = errors.New("not a valid ZIP/xmind file")
	ErrUnsupportedLegacyFormat = errors.New("this file uses the legacy XMind 8 format (content.xml); only the newer XMind format (content.json) is supported. Open it in XMind and use Save As or Export to produce a new .xmind file, then try again")
	ErrDataEntryNotFound       = errors.New("content.json not found, the XMind version may be unsupported")
	ErrMalformedPayload        = errors.New("malformed content.json")
)

// maxListedEntries caps the entry listing in EntryNotFoundError.
const maxListedEntries = 20

// EntryNotFoundError reports an archive with neither a data entry nor a
// legacy marker. It carries the archive's entry names for diagnosis.
type EntryNotFoundError struct {
	Names []string
}

func (e *EntryNotFoundError) Error() string {
	listed := e.Names
	more := ""
	if len(listed) > maxListedEntries {
		listed = listed[:maxListedEntries]
		more = " ..."
	}
	return fmt.Sprintf("%v. Files in archive: %s%s", ErrDataEntryNotFound, strings.Join(listed, ", "), more)
}

// Is makes errors.Is(err, ErrDataEntryNotFound) hold.
func (e *EntryNotFoundError) Is(target error) bool {
	return target == ErrDataEntryNotFound
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
}
