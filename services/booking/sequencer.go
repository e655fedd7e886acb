package booking

import (
	"math"

	"zela/models"
)

// Screen names shared by the built-in flow templates.
const (
	ScreenAddress  = "address"
	ScreenProperty = "property"
	ScreenUnits    = "units"
	ScreenDuration = "duration"
	ScreenPackage  = "package"
	ScreenSchedule = "schedule"
	ScreenWorker   = "worker"
	ScreenPayment  = "payment"
	ScreenReview   = "review"
)

// baseFlows maps each flow type to its starting screen order. Custom flows
// start empty and are defined entirely by their required screens.
var baseFlows = map[models.FlowType][]string{
	models.FlowStandard:      {ScreenAddress, ScreenSchedule, ScreenWorker, ScreenPayment, ScreenReview},
	models.FlowPropertyBased: {ScreenAddress, ScreenProperty, ScreenSchedule, ScreenWorker, ScreenPayment, ScreenReview},
	models.FlowUnitBased:     {ScreenAddress, ScreenUnits, ScreenSchedule, ScreenWorker, ScreenPayment, ScreenReview},
	models.FlowTimeBased:     {ScreenAddress, ScreenDuration, ScreenSchedule, ScreenWorker, ScreenPayment, ScreenReview},
	models.FlowPackageBased:  {ScreenAddress, ScreenPackage, ScreenSchedule, ScreenWorker, ScreenPayment, ScreenReview},
	models.FlowCustom:        {},
}

// BaseScreensFor returns a copy of the template screen list for a flow type.
func BaseScreensFor(ft models.FlowType) []string {
	return append([]string(nil), baseFlows[ft]...)
}

// BuildSequence merges a flow configuration into the ordered screen list.
// The merge never fails: unknown anchors fall back to appending, duplicates
// are dropped, and optional screens without an explicit position are left
// out (their placement is an authoring error the catalog reports).
func BuildSequence(cfg models.FlowConfig) []string {
	var seq []string
	if len(cfg.BaseScreens) > 0 {
		seq = dedupe(cfg.BaseScreens)
	} else {
		seq = BaseScreensFor(cfg.FlowType)
	}

	// A custom flow is exactly its required screens, in declared order.
	// Position rules and optional screens do not apply.
	if cfg.FlowType == models.FlowCustom {
		if len(cfg.RequiredScreens) == 0 {
			return seq
		}
		seq = seq[:0]
		for _, s := range cfg.RequiredScreens {
			if s.Name != "" && indexOf(seq, s.Name) < 0 {
				seq = append(seq, s.Name)
			}
		}
		return seq
	}

	for _, s := range cfg.RequiredScreens {
		seq = insertScreen(seq, s, true)
	}
	for _, s := range cfg.OptionalScreens {
		seq = insertScreen(seq, s, false)
	}
	return seq
}

// insertScreen places one screen into the sequence. Required screens without
// a position slot in before the schedule screen, or at the end if there is
// none. Optional screens are only inserted when they declare a position.
// Once a name is present its position is fixed; it is never moved.
func insertScreen(seq []string, s models.ScreenSpec, required bool) []string {
	if s.Name == "" || indexOf(seq, s.Name) >= 0 {
		return seq
	}
	if s.Position.Explicit() {
		if s.Position.After != "" {
			if i := indexOf(seq, s.Position.After); i >= 0 {
				return insertAt(seq, i+1, s.Name)
			}
			return append(seq, s.Name)
		}
		if i := indexOf(seq, s.Position.Before); i >= 0 {
			return insertAt(seq, i, s.Name)
		}
		return append(seq, s.Name)
	}
	if !required {
		return seq
	}
	if i := indexOf(seq, ScreenSchedule); i >= 0 {
		return insertAt(seq, i, s.Name)
	}
	return append(seq, s.Name)
}

// NewFlowState returns the initial navigation state over a built sequence.
func NewFlowState(sequence []string) models.FlowState {
	return models.FlowState{Sequence: sequence, Index: 0}
}

// Current returns the screen at the state's index, or "" for an empty flow.
func Current(st models.FlowState) string {
	if len(st.Sequence) == 0 || st.Index < 0 || st.Index >= len(st.Sequence) {
		return ""
	}
	return st.Sequence[st.Index]
}

// Advance moves to the next non-skipped screen. When every remaining screen
// is skipped (or there is none) it returns the state unchanged and "", so a
// retried call is safe.
func Advance(st models.FlowState, cfg models.FlowConfig, data map[string]interface{}) (models.FlowState, string) {
	for i := st.Index + 1; i < len(st.Sequence); i++ {
		if ShouldSkip(cfg, st.Sequence[i], data) {
			continue
		}
		st.Index = i
		return st, st.Sequence[i]
	}
	return st, ""
}

// Retreat moves to the previous non-skipped screen, or returns the state
// unchanged and "" at the start of the flow.
func Retreat(st models.FlowState, cfg models.FlowConfig, data map[string]interface{}) (models.FlowState, string) {
	for i := st.Index - 1; i >= 0; i-- {
		if ShouldSkip(cfg, st.Sequence[i], data) {
			continue
		}
		st.Index = i
		return st, st.Sequence[i]
	}
	return st, ""
}

// JumpTo sets the index to the named screen. Explicit navigation overrides
// skip policy, so no conditions are evaluated. Unknown names are a no-op.
func JumpTo(st models.FlowState, screen string) (models.FlowState, string) {
	i := indexOf(st.Sequence, screen)
	if i < 0 {
		return st, ""
	}
	st.Index = i
	return st, screen
}

// Reset rewinds the flow to its first screen.
func Reset(st models.FlowState) models.FlowState {
	st.Index = 0
	return st
}

// IsLast reports whether the state sits on the final screen.
func IsLast(st models.FlowState) bool {
	return len(st.Sequence) > 0 && st.Index == len(st.Sequence)-1
}

// Progress returns completion as a whole percentage, rounding half up.
func Progress(st models.FlowState) int {
	if len(st.Sequence) == 0 {
		return 0
	}
	return int(math.Floor(float64(st.Index+1)/float64(len(st.Sequence))*100 + 0.5))
}

// ShouldSkip evaluates the skip condition registered for a screen against
// the accumulated session data. Screens without a condition are never
// skipped, and malformed conditions resolve to no-skip.
func ShouldSkip(cfg models.FlowConfig, screen string, data map[string]interface{}) bool {
	cond, ok := cfg.SkipConditions[screen]
	if !ok {
		return false
	}
	return EvaluateCondition(cond, data)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func insertAt(list []string, i int, s string) []string {
	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s
	return list
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != "" && indexOf(out, s) < 0 {
			out = append(out, s)
		}
	}
	return out
}
