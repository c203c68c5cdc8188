package services

import (
	"encoding/json"
	"strings"
	"time"

	"accounts/errors"

	"github.com/dgrijalva/jwt-go"
)

// GetExpiryFromToken đọc claim exp của token mà không xác thực chữ ký.
// Token do backend cấp; ở đây chỉ cần biết khi nào phiên hết hạn.
func GetExpiryFromToken(tokenString string) (time.Time, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token is not a JWT", nil)
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot decode token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Cannot parse token claims", err)
	}

	exp, ok := claimsMap["exp"].(float64)
	if !ok {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidToken, "Token has no exp claim", nil)
	}

	return time.Unix(int64(exp), 0), nil
}

// SessionTTL trả về thời gian sống của phiên: theo exp của token nếu đọc được, nếu không thì fallback
func SessionTTL(tokenString string, fallback time.Duration, now time.Time) time.Duration {
	exp, err := GetExpiryFromToken(tokenString)
	if err != nil {
		return fallback
	}
	ttl := exp.Sub(now)
	if ttl <= 0 {
		// token đã hết hạn; giữ phiên thật ngắn để backend trả 401 và dọn phiên
		return time.Second
	}
	return ttl
}
