// Package data models the sub-state of a subject: a wool color, a chest's
// contents, a tool's durability, a creature's health and equipment.
//
// Data is a closed set of variants. A nil Data is the wildcard and matches
// anything; concrete variants match only their own variant.
package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dropcore/engine/material"
)

var (
	// ErrInvalid is wrapped by every parse failure.
	ErrInvalid = errors.New("invalid data")
	// ErrMismatch is returned when data is applied to an object of the wrong kind.
	ErrMismatch = errors.New("data does not fit object")
)

// Data is one sub-state snapshot.
type Data interface {
	// Matches reports whether other satisfies d. Reflexive for every variant.
	Matches(other Data) bool
	// Text is the canonical form accepted back by the parser for the same kind.
	Text() string
	isData()
}

// Matches treats a nil pattern as a wildcard.
func Matches(pattern, actual Data) bool {
	if pattern == nil {
		return true
	}
	if actual == nil {
		return false
	}
	return pattern.Matches(actual)
}

// Kind is the data variant a material carries.
type Kind int

const (
	KindSimple Kind = iota
	KindContainer
	KindSpawner
	KindNote
	KindRecord
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindSpawner:
		return "spawner"
	case KindNote:
		return "note"
	case KindRecord:
		return "record"
	case KindItem:
		return "item"
	default:
		return "simple"
	}
}

// KindOf picks the variant used for m's sub-state.
func KindOf(m material.Material) Kind {
	switch m.Name {
	case "FURNACE", "BURNING_FURNACE", "DISPENSER", "CHEST":
		return KindContainer
	case "MOB_SPAWNER":
		return KindSpawner
	case "NOTE_BLOCK":
		return KindNote
	case "JUKEBOX":
		return KindRecord
	}
	if !m.Block && (m.MaxDurability > 0 || m.Dyeable) {
		return KindItem
	}
	return KindSimple
}

// Parse reads s as the sub-state of material m.
func Parse(m material.Material, s string) (Data, error) {
	switch KindOf(m) {
	case KindContainer:
		return ParseContainer(s)
	case KindSpawner:
		return ParseSpawner(s)
	case KindNote:
		return ParseNote(s)
	case KindRecord:
		return ParseRecord(s)
	case KindItem:
		return ParseItem(m, s)
	default:
		return ParseSimple(m, s)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// canon uppercases and turns spaces and dashes into underscores.
func canon(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
