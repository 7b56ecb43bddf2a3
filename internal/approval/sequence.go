package approval

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Flow is the resolved reviewer sequence for one form instance.
//
// Roles is the order used for next-approver computation. Floating marks
// roles whose signature is required but whose timing is relaxed: they may
// act at any point before the form completes instead of waiting for their
// slot in the sequence.
type Flow struct {
	FormType FormType
	Roles    []Role
	Floating map[Role]bool
}

// Requires reports whether the flow includes the given role.
func (f Flow) Requires(r Role) bool {
	for _, role := range f.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// FlowOverride tunes the sequence for a single form type.
type FlowOverride struct {
	// DeanPrecedesComEx makes the Dean a strict first step for student
	// submissions instead of a floating co-signer.
	DeanPrecedesComEx bool `yaml:"dean_precedes_commex"`
}

// FlowConfig is the optional YAML override file, keyed by form type.
type FlowConfig struct {
	Forms map[string]FlowOverride `yaml:"forms"`
}

// LoadFlowConfig reads sequence overrides from a YAML file. An empty path
// yields an empty config.
func LoadFlowConfig(path string) (FlowConfig, error) {
	cfg := FlowConfig{Forms: map[string]FlowOverride{}}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Forms == nil {
		cfg.Forms = map[string]FlowOverride{}
	}
	return cfg, nil
}

// Resolver computes the required reviewer sequence for a form. It is a
// pure function of (form type, submitter category) plus the static
// override config; it never reads mutable form state.
type Resolver struct {
	overrides map[FormType]FlowOverride
}

func NewResolver(cfg FlowConfig) *Resolver {
	ov := make(map[FormType]FlowOverride, len(cfg.Forms))
	for name, o := range cfg.Forms {
		if ft, ok := ParseFormType(name); ok {
			ov[ft] = o
		}
	}
	return &Resolver{overrides: ov}
}

// Resolve returns the ordered reviewer sequence for the form type and
// submitter category. The mapping is total over the supported form types;
// anything else is ErrUnknownFormType.
func (r *Resolver) Resolve(ft FormType, category RoleCategory) (Flow, error) {
	kind, ok := formKinds[ft]
	if !ok {
		return Flow{}, ErrUnknownFormType
	}

	flow := Flow{FormType: ft, Floating: map[Role]bool{}}
	switch kind {
	case kindSingle:
		flow.Roles = []Role{RoleComEx}
	case kindDual, kindPostActivity:
		flow.Roles = []Role{RoleComEx, RoleASD}
	case kindFull:
		flow.Roles = []Role{RoleComEx, RoleASD, RoleAD}
		if category == CategoryStudent {
			if r.overrides[ft].DeanPrecedesComEx {
				flow.Roles = append([]Role{RoleDean}, flow.Roles...)
			} else {
				// The Dean co-signs on their own schedule; the
				// ComEx chain keeps strict order among itself.
				flow.Roles = append(flow.Roles, RoleDean)
				flow.Floating[RoleDean] = true
			}
		}
	}
	return flow, nil
}
