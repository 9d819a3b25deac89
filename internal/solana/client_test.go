package solana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const testSignature = "2Ana1pUpv2ZbMVkwF5FXapYeBEjdxDatLn7nvJkhgTSXbs59SyZSx866bXirPgj8QQVB57uxHJBG1YFvkRbFj4T"

// fakeRPC answers JSON-RPC requests from canned results keyed by method.
// The first failures[method] calls get a 502 instead.
type fakeRPC struct {
	mu       sync.Mutex
	results  map[string][]string
	failures map[string]int
	calls    map[string]int
}

func newFakeRPC(t *testing.T, results map[string][]string) (*fakeRPC, *httptest.Server) {
	t.Helper()
	f := &fakeRPC{results: results, failures: map[string]int{}, calls: map[string]int{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	answers := f.results[req.Method]
	failures := f.failures[req.Method]
	n := f.calls[req.Method]
	f.calls[req.Method]++
	f.mu.Unlock()

	if n < failures {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	n -= failures

	w.Header().Set("Content-Type", "application/json")
	if len(answers) == 0 {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"error":{"code":-32601,"message":"method not found"}}`))
		return
	}
	if n >= len(answers) {
		n = len(answers) - 1
	}
	_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + answers[n] + `}`))
}

func (f *fakeRPC) fail(method string, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = times
}

func (f *fakeRPC) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func TestClientGetBalance(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{
		"getBalance": {`{"context":{"slot":1},"value":1500000000}`},
	})
	c := NewClient(srv.URL)

	got, err := c.GetBalance(context.Background(), NewWallet().PublicKey())
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if got != 1_500_000_000 {
		t.Errorf("balance = %d, want 1500000000", got)
	}
}

func TestClientGetLatestBlockhash(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{
		"getLatestBlockhash": {`{"context":{"slot":1},"value":{"blockhash":"SysvarRent111111111111111111111111111111111","lastValidBlockHeight":100}}`},
	})
	c := NewClient(srv.URL, WithCommitment(rpc.CommitmentFinalized))

	got, err := c.GetLatestBlockhash(context.Background())
	if err != nil {
		t.Fatalf("GetLatestBlockhash failed: %v", err)
	}
	if got.String() != "SysvarRent111111111111111111111111111111111" {
		t.Errorf("blockhash = %s", got)
	}
	if c.Commitment() != rpc.CommitmentFinalized {
		t.Errorf("commitment = %s", c.Commitment())
	}
}

func TestClientRPCError(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{})
	c := NewClient(srv.URL)

	_, err := c.GetBalance(context.Background(), NewWallet().PublicKey())
	if err == nil || !strings.Contains(err.Error(), "failed to get balance") {
		t.Fatalf("expected wrapped rpc error, got %v", err)
	}
}

func TestClientSimulateTransaction(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{
		"simulateTransaction": {`{"context":{"slot":1},"value":{"err":{"InstructionError":[0,{"Custom":6001}]},"logs":["Program MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr invoke [1]"],"unitsConsumed":1200}}`},
	})
	c := NewClient(srv.URL)

	payer := NewWallet()
	tx, err := BuildTransaction([]solana.Instruction{memo(payer.PublicKey())}, solana.Hash{7}, payer)
	if err != nil {
		t.Fatal(err)
	}

	res, err := c.SimulateTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("SimulateTransaction failed: %v", err)
	}
	if !res.Failed() {
		t.Error("expected failed simulation")
	}
	if res.UnitsConsumed != 1200 || len(res.Logs) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestClientSendAndAirdrop(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{
		"sendTransaction": {`"` + testSignature + `"`},
		"requestAirdrop":  {`"` + testSignature + `"`},
	})
	c := NewClient(srv.URL)

	payer := NewWallet()
	tx, err := BuildTransaction([]solana.Instruction{memo(payer.PublicKey())}, solana.Hash{7}, payer)
	if err != nil {
		t.Fatal(err)
	}

	sig, err := c.SendTransaction(context.Background(), tx, true)
	if err != nil {
		t.Fatalf("SendTransaction failed: %v", err)
	}
	if sig.String() != testSignature {
		t.Errorf("signature = %s", sig)
	}

	sig, err = c.RequestAirdrop(context.Background(), payer.PublicKey(), solana.LAMPORTS_PER_SOL)
	if err != nil {
		t.Fatalf("RequestAirdrop failed: %v", err)
	}
	if sig.String() != testSignature {
		t.Errorf("airdrop signature = %s", sig)
	}
}

func TestClientConfirmTransaction(t *testing.T) {
	sig := solana.MustSignatureFromBase58(testSignature)

	tests := []struct {
		name      string
		statuses  []string
		failures  int
		wantErr   string
		wantCalls int
	}{
		{
			name: "reaches commitment",
			statuses: []string{
				`{"context":{"slot":1},"value":[null]}`,
				`{"context":{"slot":2},"value":[{"slot":2,"confirmations":0,"err":null,"confirmationStatus":"processed"}]}`,
				`{"context":{"slot":3},"value":[{"slot":3,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}]}`,
			},
			wantCalls: 3,
		},
		{
			name: "landed with error",
			statuses: []string{
				`{"context":{"slot":1},"value":[{"slot":1,"confirmations":1,"err":{"InstructionError":[0,"InvalidArgument"]},"confirmationStatus":"confirmed"}]}`,
			},
			wantErr:   "failed",
			wantCalls: 1,
		},
		{
			name: "retries after a failed poll",
			statuses: []string{
				`{"context":{"slot":3},"value":[{"slot":3,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}]}`,
			},
			failures:  1,
			wantCalls: 2,
		},
		{
			name: "retries several failed polls",
			statuses: []string{
				`{"context":{"slot":1},"value":[null]}`,
				`{"context":{"slot":3},"value":[{"slot":3,"confirmations":null,"err":null,"confirmationStatus":"finalized"}]}`,
			},
			failures:  3,
			wantCalls: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, srv := newFakeRPC(t, map[string][]string{"getSignatureStatuses": tt.statuses})
			f.fail("getSignatureStatuses", tt.failures)
			c := NewClient(srv.URL, WithConfirmInterval(time.Millisecond))

			err := c.ConfirmTransaction(context.Background(), sig)
			if tt.wantErr == "" && err != nil {
				t.Fatalf("ConfirmTransaction failed: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if got := f.count("getSignatureStatuses"); got != tt.wantCalls {
				t.Errorf("status polls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestClientConfirmTransactionDeadline(t *testing.T) {
	_, srv := newFakeRPC(t, map[string][]string{
		"getSignatureStatuses": {`{"context":{"slot":1},"value":[null]}`},
	})
	c := NewClient(srv.URL, WithConfirmInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.ConfirmTransaction(ctx, solana.MustSignatureFromBase58(testSignature))
	if err == nil || !strings.Contains(err.Error(), "not confirmed") {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap the deadline: %v", err)
	}
}

func TestClientConfirmTransactionRPCDown(t *testing.T) {
	f, srv := newFakeRPC(t, map[string][]string{
		"getSignatureStatuses": {`{"context":{"slot":1},"value":[null]}`},
	})
	f.fail("getSignatureStatuses", 1_000_000)
	c := NewClient(srv.URL, WithConfirmInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := c.ConfirmTransaction(ctx, solana.MustSignatureFromBase58(testSignature))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap the deadline: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to get signature status") {
		t.Errorf("error should carry the last poll failure: %v", err)
	}
	if got := f.count("getSignatureStatuses"); got < 2 {
		t.Errorf("status polls = %d, want retries", got)
	}
}

func TestClientClose(t *testing.T) {
	_, srv := newFakeRPC(t, nil)
	if err := NewClient(srv.URL).Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
