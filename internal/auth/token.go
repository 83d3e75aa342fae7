package auth

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-access-admin/internal/model"
)

// TokenService issues and verifies RS256-signed session claims. It is
// stateless: the only thing it holds is immutable key material, so any
// number of concurrent callers may share one instance. Signing uses the
// private key; verification needs only the public half.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(privateKeyPEM []byte, publicKeyPEM []byte, accessTTL time.Duration, refreshTTL time.Duration) (*TokenService, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func NewTokenServiceFromFiles(privateKeyFile string, publicKeyFile string, accessTTL time.Duration, refreshTTL time.Duration) (*TokenService, error) {
	privatePEM, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read private key file: %w", err)
	}

	publicPEM, err := os.ReadFile(publicKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read public key file: %w", err)
	}

	return NewTokenService(privatePEM, publicPEM, accessTTL, refreshTTL)
}

func (s *TokenService) Issue(userID int64, login string, accessLayerID int, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"login":           login,
		"id":              userID,
		"access_layer_id": accessLayerID,
		"exp":             jwt.NewNumericDate(s.now().Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// IssuePair mints the access/refresh token pair set on login and on refresh
// rotation. The two tokens carry identical payload fields and differ only in
// their expiry.
func (s *TokenService) IssuePair(userID int64, login string, accessLayerID int) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.Issue(userID, login, accessLayerID, s.accessTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.Issue(userID, login, accessLayerID, s.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify decodes tokenString, checks the signature against the public key
// and checks expiry. Every failure mode collapses to model.ErrTokenInvalid
// so callers can treat the result as "no session" without classifying it.
func (s *TokenService) Verify(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, model.ErrTokenInvalid
		}
		return s.publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	login, _ := claimsMap["login"].(string)
	if login == "" {
		return nil, model.ErrTokenInvalid
	}

	// JSON numbers decode as float64.
	rawID, ok := claimsMap["id"].(float64)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	rawLayer, ok := claimsMap["access_layer_id"].(float64)
	if !ok {
		return nil, model.ErrTokenInvalid
	}

	return &model.AuthClaims{
		UserID:        int64(rawID),
		Login:         login,
		AccessLayerID: int(rawLayer),
	}, nil
}
