package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// idpClientTimeout is the total verification request timeout.
	idpClientTimeout = 10 * time.Second
	// idpDialTimeout is the connection timeout.
	idpDialTimeout = 5 * time.Second
	// maxUserinfoBody caps the userinfo response size.
	maxUserinfoBody = 64 << 10
)

// SubjectCache caches verified subjects keyed by token hash so repeated
// requests with the same credential skip the round trip to the provider.
type SubjectCache interface {
	GetVerifiedSubject(ctx context.Context, tokenHash string) (string, error)
	SetVerifiedSubject(ctx context.Context, tokenHash, email string) error
}

// IdPVerifier delegates credential verification to an external identity
// provider's userinfo endpoint. The provider is trusted to have verified
// the email claim it returns.
type IdPVerifier struct {
	userinfoURL string
	client      *http.Client
	cache       SubjectCache
}

// NewIdPVerifier creates an IdPVerifier. The cache is optional; pass nil
// to verify every request remotely.
func NewIdPVerifier(userinfoURL string, cache SubjectCache) *IdPVerifier {
	return &IdPVerifier{
		userinfoURL: userinfoURL,
		cache:       cache,
		client: &http.Client{
			Timeout: idpClientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   idpDialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: idpDialTimeout,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Verify implements Verifier. Any provider rejection or transport
// failure maps to ErrInvalidToken; the reason is never surfaced.
func (v *IdPVerifier) Verify(ctx context.Context, credential string) (string, error) {
	tokenHash := hashCredential(credential)

	if v.cache != nil {
		if email, err := v.cache.GetVerifiedSubject(ctx, tokenHash); err == nil && email != "" {
			return email, nil
		}
	}

	email, err := v.fetchSubject(ctx, credential)
	if err != nil {
		return "", ErrInvalidToken
	}

	if v.cache != nil {
		_ = v.cache.SetVerifiedSubject(ctx, tokenHash, email)
	}

	return email, nil
}

func (v *IdPVerifier) fetchSubject(ctx context.Context, credential string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserinfoBody))
	if err != nil {
		return "", err
	}

	var claims struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &claims); err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", fmt.Errorf("userinfo response missing email claim")
	}

	return claims.Email, nil
}

// hashCredential derives the cache key. Raw credentials are never stored.
func hashCredential(credential string) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}
