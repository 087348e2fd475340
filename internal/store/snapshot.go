package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AdamBeresnev/fc-knockout/internal/bracket"
)

const maxSnapshotBytes = 4 << 20

func EncodeSnapshot(t *bracket.Tournament) ([]byte, error) {
	return json.Marshal(t)
}

// DecodeSnapshot parses a snapshot strictly and validates it. Nothing is returned unless
// the whole snapshot is valid.
func DecodeSnapshot(data []byte) (*bracket.Tournament, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var t bracket.Tournament
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", bracket.ErrInvalidSnapshot, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after snapshot", bracket.ErrInvalidSnapshot)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func ExportSnapshot(w io.Writer, t *bracket.Tournament) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func ImportSnapshot(r io.Reader) (*bracket.Tournament, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSnapshotBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSnapshotBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", bracket.ErrInvalidSnapshot, maxSnapshotBytes)
	}
	return DecodeSnapshot(data)
}
