package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/arnavshah/roster-scheduler-go/pkg/config"
	"github.com/arnavshah/roster-scheduler-go/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

func TestHMACKeys(t *testing.T) {
	s := NewService("jwt", "master", bcrypt.MinCost)
	key := s.GenerateHMACKey("kitchen.team")

	userID, err := s.VerifyHMACKey(key)
	if err != nil || userID != "kitchen.team" {
		t.Fatalf("Expected kitchen.team, got %q, %v", userID, err)
	}

	other := NewService("jwt", "different", bcrypt.MinCost)
	if _, err := other.VerifyHMACKey(key); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Expected ErrInvalidSignature, got %v", err)
	}
	for _, bad := range []string{"nodot", ".sig", "user."} {
		if _, err := s.VerifyHMACKey(bad); !errors.Is(err, ErrInvalidKeyFormat) {
			t.Errorf("VerifyHMACKey(%q): expected ErrInvalidKeyFormat, got %v", bad, err)
		}
	}
}

func TestTokens(t *testing.T) {
	s := NewService("secret", "master", bcrypt.MinCost)
	token, err := s.CreateToken("admin")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := s.VerifyToken(token)
	if err != nil || claims.Username != "admin" {
		t.Fatalf("Expected admin claims, got %+v, %v", claims, err)
	}

	if _, err := NewService("other", "master", bcrypt.MinCost).VerifyToken(token); err == nil {
		t.Errorf("Expected a token signed with another secret to fail")
	}
}

func TestEnsureAdminExists(t *testing.T) {
	cfg := config.New()
	cfg.DataPath = filepath.Join(t.TempDir(), "auth.db")
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatal(err)
	}

	s := NewService("secret", "master", bcrypt.MinCost)
	created, err := s.EnsureAdminExists(db, "boss", "pw")
	if err != nil || !created {
		t.Fatalf("Expected admin to be created, got %v, %v", created, err)
	}
	created, err = s.EnsureAdminExists(db, "boss2", "pw")
	if err != nil || created {
		t.Fatalf("Expected no second admin, got %v, %v", created, err)
	}

	var user database.MasterUser
	if err := db.Where("username = ?", "boss").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("pw", user.PasswordHash) || CheckPasswordHash("nope", user.PasswordHash) {
		t.Errorf("Password hash does not verify")
	}
}

func TestKeyPreview(t *testing.T) {
	if KeyPreview("short") != "****" {
		t.Errorf("Expected short keys to be fully masked")
	}
	if got := KeyPreview("team.0123456789abcdef"); got != "tea...cdef" {
		t.Errorf("Unexpected preview %s", got)
	}
}
