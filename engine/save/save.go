// Package save implements JSON serialization of simulator sessions. A save
// holds the seed and the command log; loading replays the log against a
// fresh world, and the recorded RNG position detects rule sets that no
// longer reproduce the session.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Version is the current save format.
const Version = "1"

// ErrVersion is returned for saves written by an incompatible format.
var ErrVersion = errors.New("unsupported save version")

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version     string   `json:"version"`
	Rules       string   `json:"rules"`
	World       string   `json:"world"`
	Player      string   `json:"player"`
	Turn        int      `json:"turn"`
	RNGSeed     int64    `json:"rng_seed"`
	RNGPosition int64    `json:"rng_position"`
	CommandLog  []string `json:"command_log"`
}

// Save serializes session data to JSON bytes.
func Save(sd SaveData) ([]byte, error) {
	sd.Version = Version
	if sd.CommandLog == nil {
		sd.CommandLog = []string{}
	}
	return json.MarshalIndent(sd, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Version != Version {
		return nil, fmt.Errorf("%w: %q", ErrVersion, sd.Version)
	}
	// Ensure the log is never nil after load.
	if sd.CommandLog == nil {
		sd.CommandLog = []string{}
	}
	return &sd, nil
}
