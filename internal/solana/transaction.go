package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// BuildTransaction assembles a transaction paid by payer and signs it with the
// payer plus any extra signers the instructions require.
func BuildTransaction(instructions []solana.Instruction, blockhash solana.Hash, payer *Wallet, signers ...solana.PrivateKey) (*solana.Transaction, error) {
	if payer == nil {
		return nil, fmt.Errorf("payer wallet is required")
	}
	if len(instructions) == 0 {
		return nil, fmt.Errorf("no instructions to send")
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer.PublicKey()))
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	keys := make(map[solana.PublicKey]solana.PrivateKey, len(signers)+1)
	keys[payer.PublicKey()] = payer.PrivateKey()
	for _, s := range signers {
		keys[s.PublicKey()] = s
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if pk, ok := keys[key]; ok {
			return &pk
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return tx, nil
}

// Signature returns the first signature of a signed transaction.
func Signature(tx *solana.Transaction) (solana.Signature, error) {
	if tx == nil || len(tx.Signatures) == 0 {
		return solana.Signature{}, fmt.Errorf("transaction is not signed")
	}
	return tx.Signatures[0], nil
}
