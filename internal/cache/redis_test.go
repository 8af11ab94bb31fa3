package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNilClientDegradesGracefully(t *testing.T) {
	client = nil
	ctx := context.Background()

	if IsTokenRevoked(ctx, "some-token") {
		t.Error("without Redis no token is reported revoked")
	}
	RevokeToken(ctx, "some-token", time.Hour)
	CacheStatsSummary(ctx, []byte(`{}`))
	InvalidateStatsSummary(ctx)
	if _, ok := GetCachedStatsSummary(ctx); ok {
		t.Error("without Redis the stats cache is always a miss")
	}
}

func TestTokenKey(t *testing.T) {
	a := tokenKey("token-a")
	b := tokenKey("token-b")
	if a == b {
		t.Error("distinct tokens must map to distinct keys")
	}
	if a != tokenKey("token-a") {
		t.Error("key derivation must be stable")
	}
	if !strings.HasPrefix(a, "revoked:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
	if strings.Contains(a, "token-a") {
		t.Error("raw token must not appear in the key")
	}
}
