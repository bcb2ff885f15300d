package database

import (
	"bufio"
	"os"
	"strings"
)

// LastStore reads the pointer file and returns the store it names when that store still
// exists. A missing pointer file, an empty one, or one naming a vanished file all fall back
// to defaultLocation. Database URLs are returned as-is.
func LastStore(pointerFile, defaultLocation string) string {
	file, err := os.Open(pointerFile)
	if err != nil {
		return defaultLocation
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return defaultLocation
	}

	location := strings.TrimSpace(scanner.Text())
	if location == "" {
		return defaultLocation
	}

	if isPostgres(location) {
		return location
	}

	if _, errStat := os.Stat(location); errStat != nil {
		return defaultLocation
	}

	return location
}

// SaveLastStore overwrites the pointer file with location.
func SaveLastStore(pointerFile, location string) error {
	return os.WriteFile(pointerFile, []byte(location+"\n"), 0o644)
}
