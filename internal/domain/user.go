package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrInvalidOTP      = errors.New("otp is invalid")
	ErrOTPExpired      = errors.New("otp is expired")
	ErrTokenInvalid    = errors.New("token is invalid or expired")
)

// User is the account document stored in the users collection.
// An OTP and its paired expiry are always written together; the cleared
// state is the empty string with expiry 0.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"` // bcrypt hash, never plaintext
	IsAccountVerified bool               `bson:"isAccountVerified"`
	VerifyOtp         string             `bson:"verifyOtp"`
	VerifyOtpExpireAt int64              `bson:"verifyOtpExpireAt"` // epoch millis, 0 = none
	ResetOtp          string             `bson:"resetOtp"`
	ResetOtpExpireAt  int64              `bson:"resetOtpExpireAt"` // epoch millis, 0 = none
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}
