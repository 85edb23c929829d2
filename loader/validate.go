package loader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/rules"
	"github.com/nathoo/dropcore/engine/subject"
)

// ErrConfigParse marks a malformed rule fragment that was skipped.
var ErrConfigParse = errors.New("config parse")

// Report collects what a load did and everything it skipped or doubted.
type Report struct {
	Files    []string
	Rules    int // compiled
	Skipped  int // rule fragments dropped
	Warnings []error
}

func (r *Report) warn(errs ...error) {
	for _, err := range errs {
		if err != nil {
			r.Warnings = append(r.Warnings, err)
		}
	}
}

// Err joins every warning, nil when the load was clean.
func (r *Report) Err() error {
	if r == nil {
		return nil
	}
	return errors.Join(r.Warnings...)
}

// Summary is a one-line description of the load.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d rules from %d files (%d skipped, %d warnings)",
		r.Rules, len(r.Files), r.Skipped, len(r.Warnings))
}

// validate warns about compiled rules that can never fire or never matter.
// It does not remove them.
func validate(set *rules.Set, report *Report) {
	for _, r := range set.Rules() {
		if r.Chance() <= 0 {
			report.warn(fmt.Errorf("rule %s: chance is 0, it will never fire", r.ID))
		}
		for _, a := range r.Actions {
			for _, t := range r.Targets {
				if !fits(a, t) {
					report.warn(fmt.Errorf("rule %s: %s never happens to %s", r.ID, a.Name(), t.String()))
				}
			}
		}
	}
}

// fits reports whether a built-in action can ever have t as its target.
// Custom actions fit anything.
func fits(a action.Action, t subject.Subject) bool {
	if a.Owner() != action.Core {
		return true
	}
	for _, c := range t.CanMatch() {
		if fitsConcrete(a, c) {
			return true
		}
	}
	return false
}

func fitsConcrete(a action.Action, t subject.Subject) bool {
	switch a {
	case action.Break:
		return t.Variant() == subject.VariantBlock || t.Variant() == subject.VariantVehicle
	case action.LeftClick, action.RightClick, action.PowerUp, action.PowerDown:
		return t.Variant() == subject.VariantBlock
	case action.LeafDecay:
		return t.Variant() == subject.VariantBlock && strings.Contains(t.Identity(), "LEAVES")
	case action.FishCaught, action.FishFailed:
		return t.Variant() == subject.VariantBlock && t.Identity() == "WATER"
	case action.MobSpawn:
		return t.Variant() == subject.VariantCreature
	case action.Hit:
		return t.Variant() == subject.VariantCreature || t.Variant() == subject.VariantVehicle
	case action.PlayerJoin, action.PlayerRespawn:
		return t.Variant() == subject.VariantCreature && t.Identity() == "PLAYER"
	}
	return true
}
