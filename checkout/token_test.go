package checkout

import (
	"testing"

	"readira/session"
)

func TestEnsureTokenMintsOnce(t *testing.T) {
	s := session.New("u1")

	first := EnsureToken(s)
	if first == "" {
		t.Fatal("expected a non-empty token")
	}
	if !s.Dirty() {
		t.Fatal("minting a token should dirty the session")
	}

	if again := EnsureToken(s); again != first {
		t.Fatalf("token rotated between calls: %q vs %q", first, again)
	}
}

func TestEnsureTokenDiffersPerSession(t *testing.T) {
	a := EnsureToken(session.New("u1"))
	b := EnsureToken(session.New("u2"))
	if a == b {
		t.Fatal("two sessions minted the same token")
	}
}
