package accumulator

import (
	"errors"
	"testing"

	"github.com/dapol-go/dapol/secret"
)

func testSecrets(t *testing.T) Secrets {
	t.Helper()
	master, err := secret.FromString("master-secret-for-testing")
	if err != nil {
		t.Fatalf("master secret: %v", err)
	}
	saltB, err := secret.FromString("blinding-salt-for-testing")
	if err != nil {
		t.Fatalf("salt_b: %v", err)
	}
	saltS, err := secret.FromString("node-salt-salt-for-testing")
	if err != nil {
		t.Fatalf("salt_s: %v", err)
	}
	return Secrets{Master: master, SaltB: saltB, SaltS: saltS}
}

func testEntities() []Entity {
	return []Entity{
		{ID: "alice", Liability: 100},
		{ID: "bob", Liability: 250},
		{ID: "carol", Liability: 0},
		{ID: "dave", Liability: 999999},
	}
}

func TestBuildAndVerifyRoundTrip(t *testing.T) {
	acc, err := Build(testSecrets(t), testEntities(), Config{Height: 6})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	root := acc.RootHash()
	for _, e := range testEntities() {
		proof, err := acc.GenerateInclusionProof(e.ID)
		if err != nil {
			t.Fatalf("GenerateInclusionProof(%s): %v", e.ID, err)
		}
		if err := proof.Verify(root); err != nil {
			t.Fatalf("Verify(%s): %v", e.ID, err)
		}
	}
}

func TestBuildRejectsDuplicateEntityIDs(t *testing.T) {
	entities := []Entity{
		{ID: "alice", Liability: 1},
		{ID: "alice", Liability: 2},
	}
	_, err := Build(testSecrets(t), entities, Config{Height: 6})
	var dup *ErrDuplicateEntityIDs
	if !errors.As(err, &dup) {
		t.Fatalf("expected ErrDuplicateEntityIDs, got %v", err)
	}
}

func TestBuildRejectsOverlongEntityID(t *testing.T) {
	longID := make([]byte, maxEntityIDBytes+1)
	for i := range longID {
		longID[i] = 'x'
	}
	entities := []Entity{{ID: string(longID), Liability: 1}}
	_, err := Build(testSecrets(t), entities, Config{Height: 6})
	if !errors.Is(err, ErrEntityIDTooLong) {
		t.Fatalf("expected ErrEntityIDTooLong, got %v", err)
	}
}

func TestBuildRejectsEmptyEntities(t *testing.T) {
	_, err := Build(testSecrets(t), nil, Config{Height: 6})
	if !errors.Is(err, ErrEmptyEntities) {
		t.Fatalf("expected ErrEmptyEntities, got %v", err)
	}
}

func TestGenerateInclusionProofUnknownEntity(t *testing.T) {
	acc, err := Build(testSecrets(t), testEntities(), Config{Height: 6})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = acc.GenerateInclusionProof("nobody")
	var notFound *ErrEntityIDNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrEntityIDNotFound, got %v", err)
	}
}

func TestBuildRejectsTooManyEntitiesForHeight(t *testing.T) {
	// height 2 has only 2 bottom-layer slots.
	entities := []Entity{
		{ID: "a", Liability: 1},
		{ID: "b", Liability: 1},
		{ID: "c", Liability: 1},
	}
	_, err := Build(testSecrets(t), entities, Config{Height: 2})
	if err == nil {
		t.Fatalf("expected an out-of-bounds error, got nil")
	}
}

func TestEntityMappingIsStableAndComplete(t *testing.T) {
	entities := testEntities()
	acc, err := Build(testSecrets(t), entities, Config{Height: 6})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mapping := acc.EntityMapping()
	if len(mapping) != len(entities) {
		t.Fatalf("expected %d entries, got %d", len(entities), len(mapping))
	}
	for _, e := range entities {
		if _, ok := mapping[e.ID]; !ok {
			t.Fatalf("missing mapping entry for %s", e.ID)
		}
	}
}

func TestPartialStoreDepthStillProves(t *testing.T) {
	acc, err := Build(testSecrets(t), testEntities(), Config{Height: 8, StoreDepth: 2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := acc.RootHash()
	proof, err := acc.GenerateInclusionProof("bob")
	if err != nil {
		t.Fatalf("GenerateInclusionProof: %v", err)
	}
	if err := proof.Verify(root); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}
