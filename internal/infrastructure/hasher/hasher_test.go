package hasher

import (
	"strings"
	"testing"
)

func TestBcrypt_DigestAndVerify(t *testing.T) {
	h := NewBcrypt(4)

	digest, err := h.Digest("p1")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if digest == "p1" {
		t.Fatalf("digest must not be the secret")
	}
	if !h.Verify("p1", digest) {
		t.Fatalf("expected secret to verify")
	}
	if h.Verify("p2", digest) {
		t.Fatalf("wrong secret verified")
	}
	if h.Verify("p1", "garbage") {
		t.Fatalf("malformed digest verified")
	}
}

func TestBcrypt_SaltsEachDigest(t *testing.T) {
	h := NewBcrypt(4)
	a, _ := h.Digest("same")
	b, _ := h.Digest("same")
	if a == b {
		t.Fatalf("expected distinct salted digests")
	}
}

func TestBcrypt_LongSecrets(t *testing.T) {
	h := NewBcrypt(4)
	long := strings.Repeat("x", 200)

	digest, err := h.Digest(long)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !h.Verify(long, digest) {
		t.Fatalf("expected long secret to verify")
	}
	// Secrets that only differ past byte 72 must not collide.
	if h.Verify(long+"y", digest) {
		t.Fatalf("secret differing after byte 72 verified")
	}
}

func TestBcrypt_CostOutOfRangeFallsBack(t *testing.T) {
	if h := NewBcrypt(99); h.cost != 10 {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}

func TestArgon2id_DigestAndVerify(t *testing.T) {
	h := NewArgon2id()

	digest, err := h.Digest("p1")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Fatalf("unexpected encoding: %s", digest)
	}
	if !h.Verify("p1", digest) {
		t.Fatalf("expected secret to verify")
	}
	if h.Verify("p2", digest) {
		t.Fatalf("wrong secret verified")
	}

	other, _ := h.Digest("p1")
	if other == digest {
		t.Fatalf("expected distinct salts")
	}
}

func TestArgon2id_RejectsMalformedDigests(t *testing.T) {
	h := NewArgon2id()
	for _, d := range []string{
		"",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	} {
		if h.Verify("p1", d) {
			t.Fatalf("digest %q should not verify", d)
		}
	}
}

func TestNew(t *testing.T) {
	if _, ok := mustNew(t, "").(*Bcrypt); !ok {
		t.Fatalf("empty name should select bcrypt")
	}
	if _, ok := mustNew(t, NameArgon2id).(*Argon2id); !ok {
		t.Fatalf("expected argon2id")
	}
	if _, err := New("md5", 0); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func mustNew(t *testing.T, name string) any {
	t.Helper()
	h, err := New(name, 4)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return h
}
