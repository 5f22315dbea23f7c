package sim

// DirectiveKind discriminates the directive variants. Resume is only ever an
// input action meaning "continue the active directive"; it is never stored as
// the active directive itself.
type DirectiveKind int

const (
	DirectiveMove DirectiveKind = iota
	DirectiveAttack
	DirectiveStand
	DirectiveResume
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveMove:
		return "move"
	case DirectiveAttack:
		return "attack"
	case DirectiveStand:
		return "stand"
	case DirectiveResume:
		return "resume"
	default:
		return "unknown"
	}
}

// Directive is the agent's multi-tick plan: a tagged variant of
// Move/Attack/Stand, or the Resume input action. Target is meaningful for
// Move, TargetID for Attack.
type Directive struct {
	Kind     DirectiveKind
	Target   Point
	TargetID string
}

// Move returns a directive steering the agent toward target one cell per
// tick along a freshly computed path.
func Move(target Point) Directive {
	return Directive{Kind: DirectiveMove, Target: target}
}

// Attack returns a directive striking a tower adjacent to the agent. The id
// is recorded for consumers but the hit lands on whichever living tower is
// adjacent in list order.
func Attack(targetID string) Directive {
	return Directive{Kind: DirectiveAttack, TargetID: targetID}
}

// Stand returns a directive that idles for one tick. Standing hands the
// interrupted directive back to the active slot, so the prior plan resumes
// on the following tick.
func Stand() Directive {
	return Directive{Kind: DirectiveStand}
}

// Resume returns the input action that keeps the active directive running
// unchanged.
func Resume() Directive {
	return Directive{Kind: DirectiveResume}
}
