package approval

// Flags is the persisted per-role approval state of one form instance.
type Flags struct {
	ComEx bool
	Dean  bool
	ASD   bool
	AD    bool
}

// Get reads the flag for a role.
func (f Flags) Get(r Role) bool {
	switch r {
	case RoleComEx:
		return f.ComEx
	case RoleDean:
		return f.Dean
	case RoleASD:
		return f.ASD
	case RoleAD:
		return f.AD
	}
	return false
}

// State is the derived approval status of a form. It is recomputed from
// the persisted flags on every read; nothing caches it.
type State struct {
	Approved []Role
	// NextRole is the first role in sequence that has not yet approved;
	// empty when the form is complete.
	NextRole Role
	Complete bool
}

// Track derives the approval state from a flow and the current flags.
// Pure: identical inputs always produce identical output.
func Track(flow Flow, flags Flags) State {
	st := State{Approved: make([]Role, 0, len(flow.Roles))}
	for _, r := range flow.Roles {
		if flags.Get(r) {
			st.Approved = append(st.Approved, r)
		} else if st.NextRole == "" {
			st.NextRole = r
		}
	}
	st.Complete = len(st.Approved) == len(flow.Roles)
	return st
}

// Decision is the authorization verdict for one acting role.
type Decision struct {
	Included  bool
	MayActNow bool
}

// Authorize applies the strict ordered gate: a role may act only when it
// is part of the required sequence, has not acted yet, and is either the
// next approver or a floating co-signer on an incomplete form. This is
// the server-side check; nothing the client claims overrides it.
func Authorize(acting Role, flow Flow, st State) Decision {
	d := Decision{Included: flow.Requires(acting)}
	if !d.Included || st.Complete || contains(st.Approved, acting) {
		return d
	}
	d.MayActNow = acting == st.NextRole || flow.Floating[acting]
	return d
}

func contains(approved []Role, r Role) bool {
	for _, a := range approved {
		if a == r {
			return true
		}
	}
	return false
}
