// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: code-host-token, directory-token, contact-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key names Load accepts. Anything else in the directory is skipped with
// a warning so a typo in a key filename is visible instead of silent.
var knownKeys = map[string]bool{
	"code-host-token": true,
	"directory-token": true,
	"contact-email":   true,
}

// Load reads the known key files in dir and returns a map of filename to
// trimmed contents. A missing directory or missing files are not errors;
// Load returns an empty map. Unreadable or unrecognized files produce a
// warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !knownKeys[name] {
			fmt.Fprintf(os.Stderr, "warning: ignoring unrecognized secret file %s\n", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
