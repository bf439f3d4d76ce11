package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPairingRoundTrip(t *testing.T) {
	p := NewPairing(nil)
	tok, err := p.IssueToken("run-1")
	if err != nil {
		t.Fatal(err)
	}
	rid, err := p.ValidateToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if rid != "run-1" {
		t.Errorf("expected run-1, got %q", rid)
	}
}

func TestPairingRejectsBadTokens(t *testing.T) {
	p := NewPairing(nil)
	tok, _ := p.IssueToken("run-1")

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := p.ValidateToken(tampered); !errors.Is(err, ErrBadToken) {
		t.Errorf("tampered token: expected ErrBadToken, got %v", err)
	}
	if _, err := p.ValidateToken("garbage"); !errors.Is(err, ErrBadToken) {
		t.Errorf("garbage token: expected ErrBadToken, got %v", err)
	}

	other := NewPairing(nil)
	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrBadToken) {
		t.Errorf("foreign secret: expected ErrBadToken, got %v", err)
	}
}

func TestPairingSecretPersisted(t *testing.T) {
	db := openTestDB(t)
	first := NewPairing(db)
	tok, _ := first.IssueToken("run-2")

	second := NewPairing(db)
	if rid, err := second.ValidateToken(tok); err != nil || rid != "run-2" {
		t.Errorf("secret should survive a restart, got %q %v", rid, err)
	}
	if db.GetSetting(secretKey) == "" {
		t.Error("secret should be stored in settings")
	}
}

func TestPairingQR(t *testing.T) {
	png, err := PairingQR("http://localhost:8080/?ctrl=abc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG data")
	}
}
