package domain

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/kosuke/pkg/identity"
)

// SetupProgress is the persisted state of a wizard run.
// The JSON field names are part of the on-disk format.
type SetupProgress struct {
	// CurrentStep is the 1-based position of the next step to execute.
	CurrentStep int `json:"current_step"`

	// ProjectName is the project slug. Empty until chosen, immutable afterwards.
	ProjectName string `json:"project_name"`

	// CompletedServices lists finished steps in completion order (append-only).
	CompletedServices []StepID `json:"completed_services"`

	// APIKeys holds the collected secrets and values, keyed by credential name.
	APIKeys map[string]string `json:"api_keys"`

	// ServiceConfigs holds the structured records of provisioned services.
	ServiceConfigs map[string]ServiceConfig `json:"service_configs"`
}

// ServiceConfig describes the externally visible identity of a provisioned service.
// It is a value object: copy it, never share it by pointer.
type ServiceConfig struct {
	Name        string            `json:"name"`
	URL         string            `json:"url"`
	Credentials map[string]string `json:"credentials"`
	WebhookURLs []string          `json:"webhook_urls"`
}

// NewProgress creates a fresh progress record positioned at the first step.
func NewProgress() *SetupProgress {
	return &SetupProgress{
		CurrentStep:       1,
		CompletedServices: []StepID{},
		APIKeys:           make(map[string]string),
		ServiceConfigs:    make(map[string]ServiceConfig),
	}
}

// Normalize replaces nil collections (older records, hand-edited files) with empty ones.
func (p *SetupProgress) Normalize() {
	if p.CompletedServices == nil {
		p.CompletedServices = []StepID{}
	}
	if p.APIKeys == nil {
		p.APIKeys = make(map[string]string)
	}
	if p.ServiceConfigs == nil {
		p.ServiceConfigs = make(map[string]ServiceConfig)
	}
	for k, cfg := range p.ServiceConfigs {
		p.ServiceConfigs[k] = cfg.normalized()
	}
}

// Validate checks the structural invariants of a record for a flow of totalSteps steps.
// Failures wrap ErrInvalidProgress.
func (p *SetupProgress) Validate(totalSteps int) error {
	if p == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidProgress)
	}
	if p.CurrentStep < 1 || p.CurrentStep > totalSteps+1 {
		return fmt.Errorf("%w: current_step %d outside [1, %d]", ErrInvalidProgress, p.CurrentStep, totalSteps+1)
	}
	if p.ProjectName != "" && !identity.IsSlug(p.ProjectName) {
		return fmt.Errorf("%w: project_name %q is not a valid slug", ErrInvalidProgress, p.ProjectName)
	}
	if p.CurrentStep > 1 && p.ProjectName == "" {
		return fmt.Errorf("%w: current_step %d without project_name", ErrInvalidProgress, p.CurrentStep)
	}
	seen := make(map[StepID]struct{}, len(p.CompletedServices))
	for _, id := range p.CompletedServices {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate completed service %q", ErrInvalidProgress, id)
		}
		seen[id] = struct{}{}
	}
	if len(p.CompletedServices) >= p.CurrentStep {
		return fmt.Errorf("%w: %d completed services at step %d", ErrInvalidProgress, len(p.CompletedServices), p.CurrentStep)
	}
	return nil
}

// IsCompleted reports whether the step id is recorded as completed.
func (p *SetupProgress) IsCompleted(id StepID) bool {
	return slices.Contains(p.CompletedServices, id)
}

// MarkCompleted appends id to CompletedServices unless it is already present.
func (p *SetupProgress) MarkCompleted(id StepID) {
	if !p.IsCompleted(id) {
		p.CompletedServices = append(p.CompletedServices, id)
	}
}

// Done reports whether every one of totalSteps steps has run.
func (p *SetupProgress) Done(totalSteps int) bool {
	return p.CurrentStep > totalSteps
}

// Service returns a copy of the named service config.
func (p *SetupProgress) Service(name string) (ServiceConfig, bool) {
	cfg, ok := p.ServiceConfigs[name]
	if !ok {
		return ServiceConfig{}, false
	}
	return cfg.Clone(), true
}

// SetService stores a copy of cfg under name.
func (p *SetupProgress) SetService(name string, cfg ServiceConfig) {
	if p.ServiceConfigs == nil {
		p.ServiceConfigs = make(map[string]ServiceConfig)
	}
	p.ServiceConfigs[name] = cfg.Clone()
}

// Clone returns a deep copy of the record.
func (p *SetupProgress) Clone() *SetupProgress {
	if p == nil {
		return nil
	}
	c := &SetupProgress{
		CurrentStep:       p.CurrentStep,
		ProjectName:       p.ProjectName,
		CompletedServices: slices.Clone(p.CompletedServices),
		APIKeys:           maps.Clone(p.APIKeys),
		ServiceConfigs:    make(map[string]ServiceConfig, len(p.ServiceConfigs)),
	}
	for k, cfg := range p.ServiceConfigs {
		c.ServiceConfigs[k] = cfg.Clone()
	}
	c.Normalize()
	return c
}

// Clone returns a deep copy of the config.
func (c ServiceConfig) Clone() ServiceConfig {
	return ServiceConfig{
		Name:        c.Name,
		URL:         c.URL,
		Credentials: maps.Clone(c.Credentials),
		WebhookURLs: slices.Clone(c.WebhookURLs),
	}.normalized()
}

func (c ServiceConfig) normalized() ServiceConfig {
	if c.Credentials == nil {
		c.Credentials = make(map[string]string)
	}
	if c.WebhookURLs == nil {
		c.WebhookURLs = []string{}
	}
	return c
}
