package levels

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/tui-robbo/internal/games/robbo/levels/formats"
)

// Export writes set to path, choosing the encoding from the extension.
// Nothing is written when the set cannot be encoded.
func Export(set *Set, path string) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := formats.MarshalYAML(set.Formats())
		if err != nil {
			return err
		}
		data = out
	default:
		var buf bytes.Buffer
		if err := formats.WriteSet(&buf, set.Formats()); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Check validates every level of set and returns one error per broken level.
func Check(set *Set) []error {
	var errs []error
	for i, def := range set.Levels {
		if err := def.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("level %d (#%d): %w", i, def.Number, err))
		}
	}
	return errs
}
