package clipboard

import (
	"errors"
	"fmt"

	"github.com/andareed/siftly-grid/logging"
	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when neither a native clipboard nor OSC52 can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Copy puts text on the system clipboard. When no native clipboard utility is
// installed (headless, ssh) it falls back to an OSC52 escape sequence.
func Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes natively", len(text))
			return nil
		}
		logging.Warnf("Clipboard: native copy failed: %v", err)
	}
	if err := copyOSC52(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
