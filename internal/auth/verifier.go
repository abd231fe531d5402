package auth

import (
	"context"
	"time"
)

// Verifier resolves a bearer credential to a verified subject email.
// Implementations must return ErrInvalidToken for every rejection,
// regardless of the reason.
type Verifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// LocalVerifier verifies self-issued HS256 tokens against a shared
// secret.
type LocalVerifier struct {
	secret []byte
}

// NewLocalVerifier creates a LocalVerifier.
func NewLocalVerifier(secret []byte) *LocalVerifier {
	return &LocalVerifier{secret: secret}
}

// Verify implements Verifier.
func (v *LocalVerifier) Verify(_ context.Context, credential string) (string, error) {
	return ParseToken(credential, v.secret)
}

// Issue signs a token for the given email. Used by the token-issuance
// endpoint when the local strategy is active.
func (v *LocalVerifier) Issue(email string, ttl time.Duration) (string, error) {
	return IssueToken(email, v.secret, ttl)
}
