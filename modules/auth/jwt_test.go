package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	tests := []struct {
		name      string
		generate  func(uint, string) (string, error)
		validate  func(string) (*JWTClaims, error)
		tokenType string
	}{
		{
			name:      "access token",
			generate:  manager.GenerateAccessToken,
			validate:  manager.ValidateAccessToken,
			tokenType: tokenTypeAccess,
		},
		{
			name:      "refresh token",
			generate:  manager.GenerateRefreshToken,
			validate:  manager.ValidateRefreshToken,
			tokenType: tokenTypeRefresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.generate(42, "student@example.com")
			if err != nil {
				t.Fatalf("generate error = %v", err)
			}
			if token == "" {
				t.Fatal("generate returned empty token")
			}

			claims, err := tt.validate(token)
			if err != nil {
				t.Fatalf("validate error = %v", err)
			}
			if claims.UserID != 42 {
				t.Errorf("claims.UserID = %v, want 42", claims.UserID)
			}
			if claims.Email != "student@example.com" {
				t.Errorf("claims.Email = %v, want student@example.com", claims.Email)
			}
			if claims.TokenType != tt.tokenType {
				t.Errorf("claims.TokenType = %v, want %v", claims.TokenType, tt.tokenType)
			}
			if claims.Subject != "42" {
				t.Errorf("claims.Subject = %v, want 42", claims.Subject)
			}
			if claims.Issuer != "test-issuer" {
				t.Errorf("claims.Issuer = %v, want test-issuer", claims.Issuer)
			}
			if claims.ID == "" {
				t.Error("claims.ID (jti) is empty")
			}
		})
	}
}

func TestJWTManager_TokensAreUnique(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	first, err := manager.GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	second, err := manager.GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if first == second {
		t.Error("two tokens issued in the same second are identical")
	}
}

func TestJWTManager_TokenTypeMismatch(t *testing.T) {
	manager := NewJWTManager(DefaultJWTConfig())

	access, err := manager.GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateRefreshToken(access) error = %v, want ErrInvalidToken", err)
	}
	if _, err := manager.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAccessToken(refresh) error = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	otherSecret := testJWTConfig()
	otherSecret.SecretKey = "another-secret"
	foreignToken, err := NewJWTManager(otherSecret).GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "someone-else"
	wrongIssuerToken, err := NewJWTManager(otherIssuer).GenerateAccessToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	anonymousToken, err := manager.GenerateAccessToken(0, "nobody@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "random string", token: "not.a.valid.token"},
		{name: "malformed jwt", token: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid"},
		{name: "signed with another secret", token: foreignToken},
		{name: "issued by someone else", token: wrongIssuerToken},
		{name: "no user id", token: anonymousToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = time.Millisecond
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken(7, "late@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	// Expiry has second granularity.
	time.Sleep(1100 * time.Millisecond)

	if _, err := manager.ValidateAccessToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateAccessToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestJWTManager_AccessTokenDuration(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = 30 * time.Minute

	if got := NewJWTManager(config).AccessTokenDuration(); got != 30*60 {
		t.Errorf("AccessTokenDuration() = %v, want %v", got, 30*60)
	}
}
