package kdf

import (
	"testing"

	"github.com/dapol-go/dapol/secret"
)

func TestDeriveDeterministic(t *testing.T) {
	master, _ := secret.FromString("master")
	ikm := master.Bytes()
	a := Derive(nil, ikm[:], []byte("x"))
	b := Derive(nil, ikm[:], []byte("x"))
	if a != b {
		t.Fatalf("expected deterministic derivation for identical inputs")
	}
}

func TestDeriveSaltChangesOutput(t *testing.T) {
	master, _ := secret.FromString("master")
	ikm := master.Bytes()
	saltA, _ := secret.FromString("salt-a")
	saltB, _ := secret.FromString("salt-b")

	a := Derive(&saltA, ikm[:], nil)
	b := Derive(&saltB, ikm[:], nil)
	if a == b {
		t.Fatalf("expected different salts to produce different outputs")
	}
}

func TestDeriveInfoChangesOutput(t *testing.T) {
	master, _ := secret.FromString("master")
	ikm := master.Bytes()

	a := Derive(nil, ikm[:], []byte("info-a"))
	b := Derive(nil, ikm[:], []byte("info-b"))
	if a == b {
		t.Fatalf("expected different info to produce different outputs")
	}
}

func TestPerEntityDerivationChain(t *testing.T) {
	// Mirrors the per-entity derivation chain from spec.md §4.2.
	master, _ := secret.FromString("master-secret")
	saltB, _ := secret.FromString("salt-b")
	saltS, _ := secret.FromString("salt-s")

	xCoordLE := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	masterBytes := master.Bytes()

	entitySecret := Derive(nil, masterBytes[:], xCoordLE)
	entitySecretBytes := entitySecret.Bytes()

	entityBlinding := Derive(&saltB, entitySecretBytes[:], nil)
	entitySalt := Derive(&saltS, entitySecretBytes[:], nil)

	if entityBlinding == entitySalt {
		t.Fatalf("expected blinding and salt derivations to diverge")
	}
	if entitySecret == (secret.Secret{}) {
		t.Fatalf("expected non-zero entity secret")
	}
}
