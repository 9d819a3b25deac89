package programlog

import (
	"fmt"
	"io"
	"strings"
)

// Invocation is one program call and everything it logged.
type Invocation struct {
	Program string
	Depth   int

	// Logs holds "Program log:" messages and unrecognized lines, in order.
	Logs []string
	Data [][]byte

	UnitsConsumed uint64
	UnitsLimit    uint64

	// Completed is set once the success or failed line was seen.
	Completed bool
	Failed    bool
	// Reason is the text after "failed:".
	Reason string

	Children []*Invocation
}

// BuildTrace arranges logs into top-level invocations with nested children.
// Lines outside any invocation are dropped. Truncated logs leave the trailing
// invocations with Completed unset.
func BuildTrace(logs []string) []*Invocation {
	parser := NewParser()

	var (
		roots []*Invocation
		stack []*Invocation
	)

	for _, line := range parser.ParseAll(logs) {
		switch line.Kind {
		case KindInvoke:
			// an invoke at depth N closes anything still open at N or deeper
			for len(stack) > 0 && len(stack) >= line.Depth {
				stack = stack[:len(stack)-1]
			}
			inv := &Invocation{Program: line.Program, Depth: line.Depth}
			if len(stack) == 0 {
				roots = append(roots, inv)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, inv)
			}
			stack = append(stack, inv)
			continue
		}

		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]

		switch line.Kind {
		case KindLog:
			top.Logs = append(top.Logs, line.Message)
		case KindData:
			if line.Data != nil {
				top.Data = append(top.Data, line.Data)
			}
		case KindConsumed:
			top.UnitsConsumed = line.Consumed
			top.UnitsLimit = line.Limit
		case KindSuccess:
			top.Completed = true
			stack = stack[:len(stack)-1]
		case KindFailed:
			top.Completed = true
			top.Failed = true
			top.Reason = line.Message
			stack = stack[:len(stack)-1]
		default:
			top.Logs = append(top.Logs, line.Raw)
		}
	}

	return roots
}

// FirstFailure returns the deepest failed invocation, the one whose error
// the runtime reported first.
func FirstFailure(trace []*Invocation) *Invocation {
	for _, inv := range trace {
		if !inv.Failed {
			continue
		}
		if child := FirstFailure(inv.Children); child != nil {
			return child
		}
		return inv
	}
	return nil
}

// TotalUnits sums the compute units of top-level invocations.
func TotalUnits(trace []*Invocation) uint64 {
	var total uint64
	for _, inv := range trace {
		total += inv.UnitsConsumed
	}
	return total
}

// Render writes trace as an indented tree.
func Render(w io.Writer, trace []*Invocation) error {
	for _, inv := range trace {
		if err := render(w, inv, 0); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, inv *Invocation, level int) error {
	indent := strings.Repeat("  ", level)

	if _, err := fmt.Fprintf(w, "%s%s [%d]\n", indent, inv.Program, inv.Depth); err != nil {
		return err
	}
	for _, msg := range inv.Logs {
		if _, err := fmt.Fprintf(w, "%s  log: %s\n", indent, msg); err != nil {
			return err
		}
	}
	for _, child := range inv.Children {
		if err := render(w, child, level+1); err != nil {
			return err
		}
	}
	if inv.UnitsLimit > 0 {
		if _, err := fmt.Fprintf(w, "%s  consumed %d of %d compute units\n", indent, inv.UnitsConsumed, inv.UnitsLimit); err != nil {
			return err
		}
	}

	status := "success"
	switch {
	case inv.Failed && inv.Reason != "":
		status = "failed: " + inv.Reason
	case inv.Failed:
		status = "failed"
	case !inv.Completed:
		status = "incomplete"
	}
	_, err := fmt.Fprintf(w, "%s  %s\n", indent, status)
	return err
}
