/* paths.go
 * Contains helpers for building and validating collection/document paths
 * Authors: scouting-admin contributors
 */

package store

import (
	"fmt"
	"strings"
)

// Join builds a path from its segments. Segments must be non-empty, must not contain a slash and must not be
// "." or "..".
// Preconditions: Receives the path segments in collection/doc order
// Postconditions: Returns the joined path or an error wrapping ErrInvalidPath
func Join(segments ...string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: no segments", ErrInvalidPath)
	}
	for _, seg := range segments {
		if err := validSegment(seg); err != nil {
			return "", err
		}
	}
	return strings.Join(segments, "/"), nil
}

func validSegment(seg string) error {
	switch {
	case strings.TrimSpace(seg) == "":
		return fmt.Errorf("%w: empty segment", ErrInvalidPath)
	case strings.Contains(seg, "/"):
		return fmt.Errorf("%w: segment %q contains '/'", ErrInvalidPath, seg)
	case seg == "." || seg == "..":
		return fmt.Errorf("%w: segment %q is reserved", ErrInvalidPath, seg)
	}
	return nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if err := validSegment(seg); err != nil {
			return nil, err
		}
	}
	return segments, nil
}

// SplitDocPath splits a document path into its parent collection path and document id
func SplitDocPath(docPath string) (string, string, error) {
	segments, err := splitPath(docPath)
	if err != nil {
		return "", "", err
	}
	if len(segments)%2 != 0 {
		return "", "", fmt.Errorf("%w: %q is a collection path", ErrInvalidPath, docPath)
	}
	last := len(segments) - 1
	return strings.Join(segments[:last], "/"), segments[last], nil
}

// CheckCollectionPath returns an error unless path names a collection
func CheckCollectionPath(collectionPath string) error {
	segments, err := splitPath(collectionPath)
	if err != nil {
		return err
	}
	if len(segments)%2 != 1 {
		return fmt.Errorf("%w: %q is a document path", ErrInvalidPath, collectionPath)
	}
	return nil
}
