// Package share holds the interchange codecs for whole-project snapshots:
// the compact share-link encoding, the JSON project import format, and the
// roster CSV export.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rostralabs/rostra/internal/domain/contributor"
)

var (
	// ErrMalformedPayload indicates a share link that cannot be decoded.
	// Callers recover by keeping their previous state.
	ErrMalformedPayload = errors.New("malformed share payload")
	// ErrMalformedImport indicates an unreadable project import file.
	ErrMalformedImport = errors.New("malformed import payload")
)

// Project is the snapshot shape carried by share links and import files.
type Project struct {
	Name     string                    `json:"name,omitempty"`
	Active   []contributor.Contributor `json:"activeContributors"`
	Archived []contributor.Contributor `json:"archivedContributors"`
}

// Snapshot converts to the store's snapshot type, defaulting missing arrays
// to empty.
func (p Project) Snapshot() contributor.Snapshot {
	snap := contributor.Snapshot{Active: p.Active, Archived: p.Archived}
	if snap.Active == nil {
		snap.Active = []contributor.Contributor{}
	}
	if snap.Archived == nil {
		snap.Archived = []contributor.Contributor{}
	}
	return snap
}

// Encode serializes a project snapshot to a compact reversible string safe to
// embed in a URL fragment or query parameter: JSON, DEFLATE, then unpadded
// URL-safe base64.
func Encode(p Project) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("encoding share payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. Any malformed input, at any layer, yields
// ErrMalformedPayload rather than a crash or partial result.
func Decode(encoded string) (*Project, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var p Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &p, nil
}

// ParseImport reads the JSON project import format. Missing arrays default to
// empty; anything unreadable yields ErrMalformedImport.
func ParseImport(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	return &p, nil
}
