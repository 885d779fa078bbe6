package hash

import "testing"

func TestHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(4)

	digest, err := hasher.Hash("P@ssword1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "P@ssword1" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !hasher.Verify("P@ssword1", digest) {
		t.Fatalf("expected matching password to verify")
	}
	if hasher.Verify("p@ssword1", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)
	first, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two digests of the same password must differ")
	}
}
