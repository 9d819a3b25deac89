package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client wraps the Solana RPC client with the calls the CLI makes.
type Client struct {
	rpc             *rpc.Client
	commitment      rpc.CommitmentType
	confirmInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithCommitment sets the commitment used for reads, simulation and confirmation.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(c *Client) {
		if commitment != "" {
			c.commitment = commitment
		}
	}
}

// WithConfirmInterval sets how often signature statuses are polled.
func WithConfirmInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.confirmInterval = d
		}
	}
}

// NewClient creates a new Solana client
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		rpc:             rpc.New(endpoint),
		commitment:      rpc.CommitmentConfirmed,
		confirmInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RPC exposes the underlying client for SDK drivers.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

// Commitment returns the configured commitment level.
func (c *Client) Commitment() rpc.CommitmentType {
	return c.commitment
}

// GetBalance returns the balance of an account in lamports
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetBalance(ctx, pubkey, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return result.Value, nil
}

// GetLatestBlockhash returns the latest blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if result == nil || result.Value == nil {
		return solana.Hash{}, fmt.Errorf("failed to get latest blockhash: empty response")
	}
	return result.Value.Blockhash, nil
}

// RequestAirdrop requests an airdrop of SOL (only works on devnet/testnet)
func (c *Client) RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, pubkey, lamports, c.commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to request airdrop: %w", err)
	}
	return sig, nil
}

// SimulationResult is the outcome of a preflight simulation.
type SimulationResult struct {
	// Err is the transaction error reported by the node, nil on success.
	Err           any
	Logs          []string
	UnitsConsumed uint64
}

// Failed reports whether the simulated transaction would fail.
func (r *SimulationResult) Failed() bool {
	return r.Err != nil
}

// SimulateTransaction runs a signed transaction through simulateTransaction.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	resp, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:  true,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to simulate transaction: %w", err)
	}
	if resp == nil || resp.Value == nil {
		return nil, fmt.Errorf("failed to simulate transaction: empty response")
	}

	result := &SimulationResult{
		Err:  resp.Value.Err,
		Logs: resp.Value.Logs,
	}
	if resp.Value.UnitsConsumed != nil {
		result.UnitsConsumed = *resp.Value.UnitsConsumed
	}
	return result, nil
}

// SendTransaction sends a transaction
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, skipPreflight bool) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       skipPreflight,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// ConfirmTransaction polls the signature status until it reaches the client's
// commitment, the transaction fails, or ctx is done. Failed polls are retried;
// the last poll error is reported with the deadline.
func (c *Client) ConfirmTransaction(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(c.confirmInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		status, err := c.signatureStatus(ctx, sig)
		switch {
		case err != nil:
			lastErr = err
		case status == nil:
			lastErr = nil
		case status.Err != nil:
			return fmt.Errorf("transaction %s failed: %v", sig, status.Err)
		case statusRank(status.ConfirmationStatus) >= commitmentRank(c.commitment):
			return nil
		default:
			lastErr = nil
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("transaction %s not confirmed: %w (last poll: %w)", sig, ctx.Err(), lastErr)
			}
			return fmt.Errorf("transaction %s not confirmed: %w", sig, ctx.Err())
		case <-ticker.C:
		}
	}
}

// signatureStatus returns nil while the cluster has not seen sig.
func (c *Client) signatureStatus(ctx context.Context, sig solana.Signature) (*rpc.SignatureStatusesResult, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to get signature status: %w", err)
	}
	if out == nil || len(out.Value) == 0 {
		return nil, nil
	}
	return out.Value[0], nil
}

func statusRank(status rpc.ConfirmationStatusType) int {
	switch status {
	case rpc.ConfirmationStatusProcessed:
		return 1
	case rpc.ConfirmationStatusConfirmed:
		return 2
	case rpc.ConfirmationStatusFinalized:
		return 3
	default:
		return 0
	}
}

func commitmentRank(commitment rpc.CommitmentType) int {
	switch commitment {
	case rpc.CommitmentProcessed:
		return 1
	case rpc.CommitmentFinalized:
		return 3
	default:
		return 2
	}
}

// Close releases the RPC transport.
func (c *Client) Close() error {
	return c.rpc.Close()
}
