package secret

import (
	"fmt"
	"os"
	"strings"
)

// Read returns the whitespace-trimmed contents of the file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", path, err)
	}

	return strings.TrimSpace(string(data)), nil
}
