package data

import (
	"strconv"
	"strings"

	"github.com/nathoo/dropcore/engine/material"
	"github.com/nathoo/dropcore/types"
)

// Container is the held contents of a chest, furnace or dispenser.
type Container struct{ Items []types.ItemStack }

func (Container) isData() {}

// Matches compares contents slot by slot.
func (d Container) Matches(other Data) bool {
	o, ok := other.(Container)
	if !ok || len(o.Items) != len(d.Items) {
		return false
	}
	for i := range d.Items {
		if !sameItem(d.Items[i], o.Items[i]) || d.Items[i].Amount != o.Items[i].Amount {
			return false
		}
	}
	return true
}

func (d Container) Text() string {
	if len(d.Items) == 0 {
		return "EMPTY"
	}
	parts := make([]string, len(d.Items))
	for i, it := range d.Items {
		parts[i] = itemText(it)
		if it.Amount != 1 {
			parts[i] += "*" + strconv.Itoa(it.Amount)
		}
	}
	return strings.Join(parts, "/")
}

// ParseContainer reads "/"-separated "<item>[*count]" entries or EMPTY.
func ParseContainer(s string) (Container, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "EMPTY") {
		return Container{}, nil
	}
	var c Container
	for _, part := range strings.Split(s, "/") {
		spec, count, hasCount := strings.Cut(part, "*")
		it, err := parseItemSpec(spec)
		if err != nil {
			return Container{}, err
		}
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n < 1 {
				return Container{}, invalid("container entry %q: bad count", part)
			}
			it.Amount = n
		}
		c.Items = append(c.Items, it)
	}
	return c, nil
}

// Spawner is the creature a mob spawner produces.
type Spawner struct{ Creature material.Creature }

func (Spawner) isData() {}

func (d Spawner) Matches(other Data) bool {
	o, ok := other.(Spawner)
	return ok && o.Creature.ID == d.Creature.ID
}

func (d Spawner) Text() string { return d.Creature.Name }

// ParseSpawner reads a creature name.
func ParseSpawner(s string) (Spawner, error) {
	c, ok := material.MatchCreature(s)
	if !ok {
		return Spawner{}, invalid("spawner: unknown creature %q", s)
	}
	return Spawner{Creature: c}, nil
}

var instruments = []string{"PIANO", "BASS_DRUM", "SNARE_DRUM", "STICKS", "BASS_GUITAR"}

// Note is a note block's instrument and pitch (0..24).
type Note struct {
	Instrument int
	Pitch      int
}

func (Note) isData() {}

func (d Note) Matches(other Data) bool {
	o, ok := other.(Note)
	return ok && o == d
}

func (d Note) Text() string {
	name := strconv.Itoa(d.Instrument)
	if d.Instrument >= 0 && d.Instrument < len(instruments) {
		name = instruments[d.Instrument]
	}
	return name + "/" + strconv.Itoa(d.Pitch)
}

// ParseNote reads "[<INSTRUMENT>/]<pitch>". The instrument defaults to PIANO.
func ParseNote(s string) (Note, error) {
	var n Note
	rest := strings.TrimSpace(s)
	if instr, pitch, ok := strings.Cut(rest, "/"); ok {
		idx := -1
		for i, name := range instruments {
			if canon(instr) == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			if v, err := strconv.Atoi(strings.TrimSpace(instr)); err == nil && v >= 0 && v < len(instruments) {
				idx = v
			}
		}
		if idx < 0 {
			return Note{}, invalid("note: unknown instrument %q", instr)
		}
		n.Instrument = idx
		rest = pitch
	}
	p, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || p < 0 || p > 24 {
		return Note{}, invalid("note: pitch %q not in 0..24", rest)
	}
	n.Pitch = p
	return n, nil
}

// Record is the disc inserted in a jukebox. A zero Disc is an empty jukebox.
type Record struct{ Disc material.Material }

func (Record) isData() {}

func (d Record) Matches(other Data) bool {
	o, ok := other.(Record)
	return ok && o.Disc.ID == d.Disc.ID && o.Disc.IsZero() == d.Disc.IsZero()
}

func (d Record) Text() string {
	if d.Disc.IsZero() {
		return "NONE"
	}
	return d.Disc.Name
}

// ParseRecord reads a disc name, or NONE.
func ParseRecord(s string) (Record, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NONE") {
		return Record{}, nil
	}
	m, ok := material.Match(s)
	if !ok {
		return Record{}, invalid("record: unknown disc %q", s)
	}
	discs, _ := material.LookupGroup("ANY_RECORD")
	if !discs.ContainsMaterial(m) {
		return Record{}, invalid("record: %s is not a disc", m.Name)
	}
	return Record{Disc: m}, nil
}
