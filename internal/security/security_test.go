package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.Allow("a") {
		t.Error("third request in window should be rejected")
	}
	if !rl.Allow("b") {
		t.Error("other keys have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("bucket should refill after the window")
	}

	now = now.Add(5 * time.Minute)
	rl.prune()
	if len(rl.visitors) != 0 {
		t.Errorf("expected idle visitors pruned, %d left", len(rl.visitors))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1234", trustProxy: true, want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "10.0.0.1:1234", trustProxy: true, want: "198.51.100.2"},
		{name: "forwarded ignored without proxy", headers: map[string]string{"X-Forwarded-For": "203.0.113.7"}, remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "real ip ignored without proxy", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "192.0.2.1:5555", want: "192.0.2.1"},
		{name: "remote addr", remote: "192.0.2.1:5555", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := BearerToken(r); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestTokenIssuer(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer() error = %v", err)
	}

	userID := NewUserID()
	token, expires, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v should be in the future", expires)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %q, want %q", got, userID)
	}

	other, _ := NewTokenIssuer("other-secret", time.Hour)
	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("token signed with another secret should be rejected, got %v", err)
	}

	if _, err := issuer.Verify("garbage"); err != ErrInvalidToken {
		t.Errorf("garbage token should be rejected, got %v", err)
	}
}

func TestTokenIssuerExpiry(t *testing.T) {
	issuer, _ := NewTokenIssuer("test-secret", time.Minute)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	token, _, err := issuer.Issue(NewUserID())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Errorf("expired token should be rejected, got %v", err)
	}
}

func TestTokenIssuerRandomSecret(t *testing.T) {
	a, _ := NewTokenIssuer("", time.Hour)
	b, _ := NewTokenIssuer("", time.Hour)

	token, _, err := a.Issue(NewUserID())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Error("random secrets should differ between issuers")
	}
}

func TestAdminKey(t *testing.T) {
	hash, err := HashAdminKey("s3cret-admin")
	if err != nil {
		t.Fatalf("HashAdminKey() error = %v", err)
	}

	if !CheckAdminKey(hash, "s3cret-admin") {
		t.Error("matching key should pass")
	}
	if CheckAdminKey(hash, "wrong") {
		t.Error("wrong key should fail")
	}
	if CheckAdminKey("", "s3cret-admin") {
		t.Error("empty hash should disable admin access")
	}
}
