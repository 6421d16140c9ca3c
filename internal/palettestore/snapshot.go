package palettestore

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/hueflow/server/internal/palette"
)

// snapshot is the on-the-wire form of an exported palette set.
type snapshot struct {
	FormatVersion int            `json:"format_version"`
	Palettes      []SavedPalette `json:"palettes"`
}

const snapshotVersion = 1

// Export serializes all saved palettes as zstd-compressed JSON.
func (s *Store) Export() ([]byte, error) {
	palettes, err := s.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list palettes: %w", err)
	}

	raw, err := json.Marshal(snapshot{FormatVersion: snapshotVersion, Palettes: palettes})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(raw, nil), nil
}

// Import loads palettes from a zstd-compressed JSON snapshot, skipping
// entries that fail validation. Returns the number of palettes saved.
func (s *Store) Import(data []byte) (int, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return 0, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.FormatVersion != snapshotVersion {
		return 0, fmt.Errorf("unsupported snapshot version %d", snap.FormatVersion)
	}

	imported := 0
	for _, sp := range snap.Palettes {
		p := palette.Palette{Name: sp.Name, Stops: sp.Stops}
		if palette.Validate(p) != nil {
			continue
		}
		if err := s.Save(p); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
