package solana

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestWalletFileRoundTrip(t *testing.T) {
	w := NewWallet()
	path := filepath.Join(t.TempDir(), "id.json")

	if err := w.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read keypair: %v", err)
	}
	if len(data) == 0 || data[0] != '[' {
		t.Fatalf("keypair file is not a JSON byte array: %q", data)
	}

	loaded, err := WalletFromFile(path)
	if err != nil {
		t.Fatalf("WalletFromFile failed: %v", err)
	}
	if !loaded.PublicKey().Equals(w.PublicKey()) {
		t.Errorf("public key = %s, want %s", loaded.PublicKey(), w.PublicKey())
	}
}

func TestWalletFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.json")
	if err := os.WriteFile(short, []byte("[1,2,3]"), 0o600); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{short, garbage, filepath.Join(dir, "missing.json")} {
		if _, err := WalletFromFile(path); err == nil {
			t.Errorf("WalletFromFile(%s) expected error", filepath.Base(path))
		}
	}
}

func TestWalletFromBase58(t *testing.T) {
	w := NewWallet()

	loaded, err := WalletFromBase58(" " + w.PrivateKey().String() + "\n")
	if err != nil {
		t.Fatalf("WalletFromBase58 failed: %v", err)
	}
	if loaded.String() != w.String() {
		t.Errorf("wallet = %s, want %s", loaded, w)
	}

	if _, err := WalletFromBase58("not-a-key"); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestLoadWallet(t *testing.T) {
	w := NewWallet()
	path := filepath.Join(t.TempDir(), "id.json")
	if err := w.SaveToFile(path); err != nil {
		t.Fatal(err)
	}
	other := NewWallet()

	got, err := LoadWallet(path, other.PrivateKey().String())
	if err != nil {
		t.Fatalf("LoadWallet failed: %v", err)
	}
	if got.String() != w.String() {
		t.Errorf("keypair file should win, got %s", got)
	}

	got, err = LoadWallet("", other.PrivateKey().String())
	if err != nil || got.String() != other.String() {
		t.Errorf("LoadWallet(base58) = %v, %v", got, err)
	}

	got, err = LoadWallet("", "")
	if got != nil || err != nil {
		t.Errorf("LoadWallet(empty) = %v, %v, want nil, nil", got, err)
	}
}

func TestWalletSign(t *testing.T) {
	w := NewWallet()
	msg := []byte("goatswap")

	sig, err := w.Sign(msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	var s solana.Signature
	copy(s[:], sig)
	if !s.Verify(w.PublicKey(), msg) {
		t.Error("signature does not verify")
	}
	if bytes.Equal(sig, make([]byte, len(sig))) {
		t.Error("signature is empty")
	}
}
