// Package msauth holds the access-token claim shape shared by the API
// server and the CLI.
package msauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "metashare"
	Audience = "metashare-api"
)

// UserClaims is a flat view of an access token. Values are only
// trustworthy after the token has been verified by the server.
type UserClaims struct {
	ID       string
	Username string
	IsStaff  bool
	Iss      string
	Aud      string
	Iat      int64
	Exp      int64
}

// ParseTokenClaims extracts raw claims without verifying the signature.
// Do not use it for authorization.
func ParseTokenClaims(tokenStr string) (jwt.MapClaims, error) {
	var claims jwt.MapClaims
	parser := new(jwt.Parser)
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func FromToken(tokenStr string) (*UserClaims, error) {
	claims, err := ParseTokenClaims(tokenStr)
	if err != nil {
		return nil, err
	}
	return FromMapClaims(claims)
}

// FromMapClaims maps raw claims into UserClaims. Numeric timestamps arrive
// as float64 from the jwt parser and as int64 from ToClaims.
func FromMapClaims(mc jwt.MapClaims) (*UserClaims, error) {
	uc := &UserClaims{}

	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	uc.ID = sub

	uc.Username, _ = mc["username"].(string)
	uc.IsStaff, _ = mc["is_staff"].(bool)
	uc.Iss, _ = mc["iss"].(string)

	switch aud := mc["aud"].(type) {
	case string:
		uc.Aud = aud
	case []any:
		if len(aud) > 0 {
			uc.Aud, _ = aud[0].(string)
		}
	}

	uc.Iat = unix(mc["iat"])
	uc.Exp = unix(mc["exp"])
	return uc, nil
}

func unix(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case int:
		return int64(t)
	}
	return 0
}

// ToClaims converts UserClaims into MapClaims for signing.
func ToClaims(uc *UserClaims) jwt.MapClaims {
	mc := jwt.MapClaims{"sub": uc.ID}
	if uc.Username != "" {
		mc["username"] = uc.Username
	}
	if uc.IsStaff {
		mc["is_staff"] = true
	}
	if uc.Iss != "" {
		mc["iss"] = uc.Iss
	}
	if uc.Aud != "" {
		mc["aud"] = uc.Aud
	}
	if uc.Iat != 0 {
		mc["iat"] = uc.Iat
	}
	if uc.Exp != 0 {
		mc["exp"] = uc.Exp
	}
	return mc
}

// IsTokenExpired reports whether token expires within skew. It does not
// verify the signature.
func IsTokenExpired(token string, skew time.Duration) (bool, error) {
	if token == "" {
		return true, nil
	}
	uc, err := FromToken(token)
	if err != nil {
		return true, err
	}
	if uc.Exp == 0 {
		return false, nil
	}
	return time.Now().After(time.Unix(uc.Exp, 0).Add(-skew)), nil
}
