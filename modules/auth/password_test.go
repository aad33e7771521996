package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	passwords := map[string]string{
		"simple":  "password123",
		"symbols": "P@ssw0rd!#$%^&*()",
		"unicode": "密码123",
		"short":   "a",
	}

	for name, password := range passwords {
		t.Run(name, func(t *testing.T) {
			hash, err := hasher.Hash(password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == "" || hash == password {
				t.Fatalf("Hash() = %q, want a bcrypt hash", hash)
			}

			if !hasher.Verify(password, hash) {
				t.Error("Verify() rejected the correct password")
			}
			if hasher.Verify(password+"x", hash) {
				t.Error("Verify() accepted a different password")
			}
			if hasher.Verify("", hash) {
				t.Error("Verify() accepted an empty password")
			}
		})
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash1, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestPasswordHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "default", cost: bcrypt.DefaultCost, want: bcrypt.DefaultCost},
		{name: "below minimum", cost: 1, want: bcrypt.MinCost},
		{name: "above maximum", cost: 99, want: bcrypt.MaxCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPasswordHasherWithCost(tt.cost).cost; got != tt.want {
				t.Errorf("cost = %d, want %d", got, tt.want)
			}
		})
	}

	if got := NewPasswordHasher().cost; got != bcrypt.DefaultCost {
		t.Errorf("NewPasswordHasher().cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}
