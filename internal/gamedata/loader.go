package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("gamedata: read %s: %w", filename, err)
	}
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("gamedata: parse %s: %w", filename, err)
	}
	return result, nil
}

// MustLoad is Load for data the game cannot run without; it panics on error.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadText reads a raw text file from the embedded filesystem.
func LoadText(filename string) (string, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("gamedata: read %s: %w", filename, err)
	}
	return string(content), nil
}
