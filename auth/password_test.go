package auth

import "testing"

func TestHashProducesDistinctSaltedDigests(t *testing.T) {
	h := NewPasswordHasher()

	first, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same plaintext are identical, expected distinct salts")
	}
	if !h.Verify("correct horse battery staple", first) {
		t.Fatalf("first digest did not verify")
	}
	if !h.Verify("correct horse battery staple", second) {
		t.Fatalf("second digest did not verify")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	h := NewPasswordHasher()

	digest, err := h.Hash("password1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h.Verify("password2", digest) {
		t.Fatalf("wrong password verified")
	}
}

func TestVerifyMalformedDigestReturnsFalse(t *testing.T) {
	h := NewPasswordHasher()

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$garbage"} {
		if h.Verify("anything", digest) {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}
