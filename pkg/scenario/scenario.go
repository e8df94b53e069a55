// Package scenario implements a YAML-driven regression test suite for the
// simulator: each scenario names a topology file and a sequence of ping
// steps, each with an expectation checked against sim.Simulate's Result.
// This is how spec.md's concrete scenarios are encoded as data instead of
// hand-written Go assertions, mirroring the teacher's newtest scenario
// format but replacing SSH/VM step executors with direct in-process calls.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/netlab-project/netlab/pkg/model"
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Topology    string `yaml:"topology"`
	Steps       []Step `yaml:"steps"`
}

// StepAction identifies the kind of action a step performs. Only "ping" is
// implemented today; the field exists so future step kinds (e.g. a raw
// "simulate" step with full PacketSpec control) slot in without breaking
// existing scenario files.
type StepAction string

// ActionPing originates one packet from From to To and checks the result.
const ActionPing StepAction = "ping"

// Step is one action within a scenario.
type Step struct {
	Name     string     `yaml:"name"`
	Action   StepAction `yaml:"action"`
	From     string     `yaml:"from"`
	To       string     `yaml:"to"`
	Protocol string     `yaml:"protocol,omitempty"`
	TTL      int        `yaml:"ttl,omitempty"`
	Expect   Expect     `yaml:"expect,omitempty"`
}

// Expect is a scenario step's assertion block. TraceContains is satisfied
// if every named action appears somewhere in the trace, in any order — a
// scenario names the actions it cares about, not the full sequence.
type Expect struct {
	Success        *bool    `yaml:"success,omitempty"`
	Delivered      *bool    `yaml:"delivered,omitempty"`
	Blocked        *bool    `yaml:"blocked,omitempty"`
	Loop           *bool    `yaml:"loop,omitempty"`
	ReasonContains string   `yaml:"reason_contains,omitempty"`
	TraceContains  []string `yaml:"trace_contains,omitempty"`
}

// Parse decodes one scenario file's bytes.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &s, nil
}

// Load reads and parses a scenario file from path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %q: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadAll reads every *.yaml/*.yml file in dir as a scenario.
func LoadAll(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}
	var scenarios []*Scenario
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		s, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func protocolOf(name string) model.Protocol {
	if name == "" {
		return model.ProtoICMP
	}
	return model.Protocol(name)
}
