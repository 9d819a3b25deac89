package programlog

import (
	"bytes"
	"strings"
	"testing"
)

const (
	pool  = "GWkXNWEq3DkEK1x9dMDBUedyGzsDfYaM2c1YpRCyXfGh"
	token = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	memo  = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
)

var swapLogs = []string{
	"Program " + pool + " invoke [1]",
	"Program log: Instruction: SwapTokenForNft",
	"Program " + token + " invoke [2]",
	"Program log: Instruction: Transfer",
	"Program " + token + " consumed 4645 of 180000 compute units",
	"Program " + token + " success",
	"Program data: Z29hdHN3YXA=",
	"Program " + pool + " consumed 31000 of 200000 compute units",
	"Program " + pool + " success",
	"Program " + memo + " invoke [1]",
	"Program " + memo + " consumed 300 of 169000 compute units",
	"Program " + memo + " success",
}

func TestBuildTraceNesting(t *testing.T) {
	trace := BuildTrace(swapLogs)

	if len(trace) != 2 {
		t.Fatalf("roots = %d, want 2", len(trace))
	}

	root := trace[0]
	if root.Program != pool || root.Depth != 1 || !root.Completed || root.Failed {
		t.Errorf("root = %+v", root)
	}
	if len(root.Logs) != 1 || root.Logs[0] != "Instruction: SwapTokenForNft" {
		t.Errorf("root logs = %v", root.Logs)
	}
	if len(root.Data) != 1 || string(root.Data[0]) != "goatswap" {
		t.Errorf("root data = %q", root.Data)
	}
	if root.UnitsConsumed != 31000 || root.UnitsLimit != 200000 {
		t.Errorf("root units = %d of %d", root.UnitsConsumed, root.UnitsLimit)
	}

	if len(root.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(root.Children))
	}
	child := root.Children[0]
	if child.Program != token || child.Depth != 2 || child.UnitsConsumed != 4645 {
		t.Errorf("child = %+v", child)
	}

	if got := TotalUnits(trace); got != 31300 {
		t.Errorf("TotalUnits() = %d, want 31300", got)
	}
	if FirstFailure(trace) != nil {
		t.Error("FirstFailure() should be nil for a successful trace")
	}
}

func TestBuildTraceFailure(t *testing.T) {
	trace := BuildTrace([]string{
		"Program " + pool + " invoke [1]",
		"Program " + token + " invoke [2]",
		"Program log: Error: insufficient funds",
		"Program " + token + " failed: custom program error: 0x1",
		"Program " + pool + " failed: custom program error: 0x1",
	})

	failed := FirstFailure(trace)
	if failed == nil {
		t.Fatal("expected a failed invocation")
	}
	if failed.Program != token || failed.Reason != "custom program error: 0x1" {
		t.Errorf("FirstFailure() = %+v", failed)
	}
}

func TestBuildTraceTruncated(t *testing.T) {
	trace := BuildTrace([]string{
		"Log truncated",
		"Program " + pool + " invoke [1]",
		"Program " + token + " invoke [2]",
		"Program " + token + " success",
		"Program " + token + " invoke [2]",
		"Log truncated",
	})

	if len(trace) != 1 {
		t.Fatalf("roots = %d, want 1", len(trace))
	}
	root := trace[0]
	if root.Completed {
		t.Error("root should be incomplete")
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if got := root.Children[1].Logs; len(got) != 1 || got[0] != "Log truncated" {
		t.Errorf("unknown lines should be kept, got %v", got)
	}
}

func TestBuildTraceReinvokeAtSameDepth(t *testing.T) {
	// the first invocation never reports success
	trace := BuildTrace([]string{
		"Program " + pool + " invoke [1]",
		"Program " + memo + " invoke [1]",
		"Program " + memo + " success",
	})
	if len(trace) != 2 {
		t.Fatalf("roots = %d, want 2", len(trace))
	}
	if trace[0].Completed || !trace[1].Completed {
		t.Errorf("completion = %v, %v", trace[0].Completed, trace[1].Completed)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, BuildTrace(swapLogs[:9])); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := strings.Join([]string{
		pool + " [1]",
		"  log: Instruction: SwapTokenForNft",
		"  " + token + " [2]",
		"    log: Instruction: Transfer",
		"    consumed 4645 of 180000 compute units",
		"    success",
		"  consumed 31000 of 200000 compute units",
		"  success",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRenderFailure(t *testing.T) {
	var buf bytes.Buffer
	trace := BuildTrace([]string{
		"Program " + pool + " invoke [1]",
		"Program " + pool + " failed: custom program error: 0x1771",
	})
	if err := Render(&buf, trace); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "  failed: custom program error: 0x1771\n") {
		t.Errorf("Render() = %q", buf.String())
	}
}
