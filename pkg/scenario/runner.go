package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/netlab-project/netlab/pkg/model"
	"github.com/netlab-project/netlab/pkg/sim"
	"github.com/netlab-project/netlab/pkg/topoconv"
)

// StepResult is the outcome of one executed step.
type StepResult struct {
	Name    string
	Passed  bool
	Failure string
	Result  model.Result
}

// Result is the outcome of one executed scenario.
type Result struct {
	Name  string
	Steps []StepResult
}

// Passed reports whether every step in the scenario passed.
func (r *Result) Passed() bool {
	for _, s := range r.Steps {
		if !s.Passed {
			return false
		}
	}
	return true
}

// Run loads s's topology (relative to baseDir when not absolute) and
// executes each step against it in order, building one sim.Result per
// ping step and checking it against that step's Expect block.
func Run(s *Scenario, baseDir string) (*Result, error) {
	topoPath := s.Topology
	if !filepath.IsAbs(topoPath) {
		topoPath = filepath.Join(baseDir, topoPath)
	}

	data, err := os.ReadFile(topoPath)
	if err != nil {
		return nil, fmt.Errorf("reading topology %q: %w", topoPath, err)
	}
	doc, err := topoconv.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing topology %q: %w", topoPath, err)
	}
	topo, err := topoconv.Convert(doc)
	if err != nil {
		return nil, fmt.Errorf("converting topology %q: %w", topoPath, err)
	}

	result := &Result{Name: s.Name}
	for _, step := range s.Steps {
		result.Steps = append(result.Steps, runStep(topo, step))
	}
	return result, nil
}

func runStep(topo *model.Topology, step Step) StepResult {
	if step.Action != ActionPing && step.Action != "" {
		return StepResult{Name: step.Name, Failure: fmt.Sprintf("unsupported action %q", step.Action)}
	}

	spec := model.PacketSpec{
		SrcNodeID: step.From,
		DstNodeID: step.To,
		Protocol:  protocolOf(step.Protocol),
		TTL:       step.TTL,
	}
	outcome := sim.Simulate(topo, spec, model.DefaultOptions())

	if failure := check(outcome, step.Expect); failure != "" {
		return StepResult{Name: step.Name, Failure: failure, Result: outcome}
	}
	return StepResult{Name: step.Name, Passed: true, Result: outcome}
}

func check(result model.Result, expect Expect) string {
	if expect.Success != nil && result.Success != *expect.Success {
		return fmt.Sprintf("success = %v, want %v", result.Success, *expect.Success)
	}
	if expect.Delivered != nil && result.Delivered != *expect.Delivered {
		return fmt.Sprintf("delivered = %v, want %v", result.Delivered, *expect.Delivered)
	}
	if expect.Blocked != nil && result.Blocked != *expect.Blocked {
		return fmt.Sprintf("blocked = %v, want %v", result.Blocked, *expect.Blocked)
	}
	if expect.Loop != nil && result.Loop != *expect.Loop {
		return fmt.Sprintf("loop = %v, want %v", result.Loop, *expect.Loop)
	}
	if expect.ReasonContains != "" && !strings.Contains(result.Reason, expect.ReasonContains) {
		return fmt.Sprintf("reason %q does not contain %q", result.Reason, expect.ReasonContains)
	}
	for _, action := range expect.TraceContains {
		if !traceHasAction(result.Trace, action) {
			return fmt.Sprintf("trace does not contain action %q", action)
		}
	}
	return ""
}

func traceHasAction(trace []model.TraceHop, action string) bool {
	for _, hop := range trace {
		if string(hop.Action) == action {
			return true
		}
	}
	return false
}
