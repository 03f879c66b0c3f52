package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cinder/internal/item"
	"github.com/roach88/cinder/internal/reconcile"
)

// Scenario is one reconciliation case: the list before and after.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// List names the rendered list. Defaults to Name.
	List string `yaml:"list,omitempty"`

	// Token is a fixed pass token for deterministic traces.
	// If empty, testutil.DefaultToken is used.
	Token string `yaml:"token,omitempty"`

	// Old is rendered first, from an empty list.
	Old []item.Item `yaml:"old,omitempty"`

	// New is rendered second; its pass is the one under test.
	New []item.Item `yaml:"new,omitempty"`

	// Expect holds optional expectations about the second pass.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected outcome of the pass under test. A nil slice
// means "don't check"; an empty one means "expect none".
type Expect struct {
	// Final is the terminal instruction: add_remaining, remove_remaining or done.
	Final string `yaml:"final,omitempty"`

	// Kept lists recycled keys in new-list order.
	Kept []string `yaml:"kept,omitempty"`

	// Inserted lists the keys of freshly mounted components in new-list order.
	Inserted []string `yaml:"inserted,omitempty"`

	// Removed lists unmounted keys in removal order.
	Removed []string `yaml:"removed,omitempty"`

	// Instructions is the exact instruction sequence.
	Instructions []string `yaml:"instructions,omitempty"`

	// Counts are the expected tallies.
	Counts *ExpectCounts `yaml:"counts,omitempty"`
}

// ExpectCounts mirrors reconcile.Counts for scenario files.
type ExpectCounts struct {
	Recycled int `yaml:"recycled"`
	Removed  int `yaml:"removed"`
	Added    int `yaml:"added"`
}

// ListName returns the list to render into.
func (s *Scenario) ListName() string {
	if s.List != "" {
		return s.List
	}
	return s.Name
}

// LoadScenario reads, schema-checks and parses a scenario YAML file.
// Returns an error if the file doesn't exist, violates the schema, contains
// unknown fields, or fails semantic validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	if errs := ValidateSchema(data); len(errs) > 0 {
		return nil, fmt.Errorf("schema: %w", errors.Join(errs...))
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks what the schema cannot express.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if err := item.Validate(s.Old); err != nil {
		return fmt.Errorf("old: %w", err)
	}
	if err := item.Validate(s.New); err != nil {
		return fmt.Errorf("new: %w", err)
	}

	if s.Expect == nil {
		return nil
	}

	if s.Expect.Final != "" {
		k, ok := reconcile.ParseKind(s.Expect.Final)
		if !ok || !k.Final() {
			return fmt.Errorf("expect.final: %q is not a terminal instruction", s.Expect.Final)
		}
	}

	for i, name := range s.Expect.Instructions {
		if !validInstruction(name) {
			return fmt.Errorf("expect.instructions[%d]: unknown instruction %q", i, name)
		}
	}

	return nil
}

var instructionNames = map[string]bool{
	"recycle_head_head": true,
	"recycle_tail_tail": true,
	"recycle_head_tail": true,
	"recycle_tail_head": true,
	"remove_head":       true,
	"add_remaining":     true,
	"remove_remaining":  true,
	"done":              true,
}

func validInstruction(name string) bool {
	return instructionNames[name]
}
