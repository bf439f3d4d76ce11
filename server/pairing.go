package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skip2/go-qrcode"
)

const (
	pairingExpiry = 10 * time.Minute
	qrSize        = 256 // PNG edge in pixels
	secretKey     = "pairing_secret"
)

// ErrBadToken is returned for pairing tokens that fail validation
var ErrBadToken = errors.New("invalid pairing token")

// Pairing issues and checks the tokens that let a phone act as the
// controller of one run
type Pairing struct {
	secret []byte
}

// NewPairing loads the signing secret from db (or creates one)
func NewPairing(db *DB) *Pairing {
	return &Pairing{secret: loadOrCreateSecret(db)}
}

// loadOrCreateSecret loads the signing secret from the database, or
// generates and persists a new one if none exists.
func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting(secretKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate pairing secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting(secretKey, hex.EncodeToString(secret)); err != nil {
			log.Printf("warning: could not persist pairing secret: %v", err)
		}
	}
	return secret
}

// IssueToken signs a short-lived controller token for runID
func (p *Pairing) IssueToken(runID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"rid": runID,
		"jti": GenerateID(8),
		"exp": now.Add(pairingExpiry).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// ValidateToken returns the run a controller token was issued for
func (p *Pairing) ValidateToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrBadToken
	}
	rid, ok := claims["rid"].(string)
	if !ok || rid == "" {
		return "", ErrBadToken
	}
	return rid, nil
}

// PairingQR renders the controller URL as a PNG QR code
func PairingQR(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("pairing: qr: %w", err)
	}
	return png, nil
}
