package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Fixed token claims shared by every deployment. Verification pins both, so a
// token minted for another service never validates here even with the right
// secret.
const (
	Issuer   = "restaurant-inventory-api"
	Audience = "restaurant-inventory-client"
)

var (
	// ErrInvalidToken is returned when a token is malformed, carries a bad
	// signature, the wrong issuer/audience, or is expired.
	ErrInvalidToken = errors.New("invalid token")
)

// AccessClaims holds JWT claims for the access token. The identity fields are
// the only user state available to request handlers; they are a snapshot taken
// at issuance.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	LocationID string `json:"locationId,omitempty"`
}

// RefreshClaims holds JWT claims for the refresh token. Deliberately carries
// no user identity; a refresh token is bound to a user only through its stored
// session row.
type RefreshClaims struct {
	jwt.RegisteredClaims
	TokenID string `json:"tokenId"`
}

// TokenCodec issues and validates HS256 access and refresh tokens. The two
// token types are signed with independent secrets so compromise of one signing
// key cannot forge the other type.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenCodec returns a TokenCodec signing with the given secrets and
// lifetimes. accessSecret and refreshSecret must differ.
func NewTokenCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAccess issues a short-lived access JWT carrying the user's identity.
// Returns the token string and its expiration time.
func (c *TokenCodec) SignAccess(userID, username, email, role, locationID string) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(c.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:     userID,
		Username:   username,
		Email:      email,
		Role:       role,
		LocationID: locationID,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
	return token, expiresAt, err
}

// SignRefresh issues an opaque refresh JWT whose only claim is a fresh random
// token id. Returns the token string, the token id, and the embedded
// expiration time.
func (c *TokenCodec) SignRefresh() (token, tokenID string, expiresAt time.Time, err error) {
	tokenID = uuid.New().String()
	now := time.Now().UTC()
	expiresAt = now.Add(c.refreshTTL)
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenID: tokenID,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
	return token, tokenID, expiresAt, err
}

// VerifyAccess parses and validates the access token (signature, exp, iss,
// aud). Returns the decoded claims or ErrInvalidToken.
func (c *TokenCodec) VerifyAccess(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.accessSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if err := checkIssuerAudience(&claims.RegisteredClaims); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh parses and validates the refresh token (signature, exp, iss,
// aud) using the refresh secret. Returns the embedded token id or
// ErrInvalidToken.
func (c *TokenCodec) VerifyRefresh(tokenString string) (tokenID string, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.refreshSecret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if err := checkIssuerAudience(&claims.RegisteredClaims); err != nil {
		return "", err
	}
	return claims.TokenID, nil
}

func checkIssuerAudience(rc *jwt.RegisteredClaims) error {
	if rc.Issuer != Issuer {
		return ErrInvalidToken
	}
	for _, a := range rc.Audience {
		if a == Audience {
			return nil
		}
	}
	return ErrInvalidToken
}
