package report

import (
	"crypto/sha256"
	"fmt"

	"github.com/wolfeidau/humanhash"
)

// Fingerprint returns a human-readable digest of a serialized report, such as
// "mockingbird-hawaii-nineteen-august". Equal contents give equal fingerprints.
func Fingerprint(data []byte) (string, error) {
	hash := sha256.Sum256(data)

	humanReadableHash, err := humanhash.Humanize(hash[:], 4)
	if err != nil {
		return "", fmt.Errorf("could not humanize hash: %w", err)
	}
	return humanReadableHash, nil
}
