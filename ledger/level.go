package ledger

import (
	"github.com/ts4z/pkoledger/fault"
	"github.com/ts4z/pkoledger/model"
)

// Levels returns a copy of the blind schedule.
func (l *Ledger) Levels() []model.BlindLevel {
	return append([]model.BlindLevel(nil), l.levels...)
}

// CurrentLevelNumber is the zero-based cursor into the schedule.
func (l *Ledger) CurrentLevelNumber() int {
	return l.currentLevel
}

func (l *Ledger) CurrentLevel() model.BlindLevel {
	return l.levels[l.currentLevel]
}

// NextLevel returns the level after the current one, if there is one.
func (l *Ledger) NextLevel() (model.BlindLevel, bool) {
	if l.currentLevel+1 >= len(l.levels) {
		return model.BlindLevel{}, false
	}
	return l.levels[l.currentLevel+1], true
}

func (l *Ledger) AdvanceLevel() error {
	if l.currentLevel >= len(l.levels)-1 {
		return fault.Errorf(fault.InvalidState, "already at max level")
	}
	l.currentLevel++
	return nil
}

func (l *Ledger) PreviousLevel() error {
	if l.currentLevel <= 0 {
		return fault.Errorf(fault.InvalidState, "already at min level")
	}
	l.currentLevel--
	return nil
}

// HandForHand is a procedural flag with no effect on settlement.
func (l *Ledger) HandForHand() bool {
	return l.handForHand
}

func (l *Ledger) SetHandForHand(on bool) {
	l.handForHand = on
}

// ToggleHandForHand flips the flag and returns the new value.
func (l *Ledger) ToggleHandForHand() bool {
	l.handForHand = !l.handForHand
	return l.handForHand
}
