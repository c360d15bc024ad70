package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/identity"
)

var (
	ErrInvalidEmail       = sharederrors.New(sharederrors.KindInvalidArgument, "email is not a valid address")
	ErrWeakPassword       = sharederrors.New(sharederrors.KindInvalidArgument, "password must be 8-20 characters and include a letter, a digit and a special character")
	ErrEmailTaken         = sharederrors.New(sharederrors.KindAlreadyExists, "email is already registered")
	ErrOwnerTokenMismatch = sharederrors.New(sharederrors.KindForbidden, "owner token does not match")
	ErrInvalidCredentials = sharederrors.New(sharederrors.KindUnauthorized, "invalid email or password")
	ErrInvalidToken       = sharederrors.New(sharederrors.KindUnauthorized, "access token is invalid or expired")
	ErrSessionEnded       = sharederrors.New(sharederrors.KindUnauthorized, "session has ended, sign in again")
	ErrNotAccountHolder   = sharederrors.New(sharederrors.KindForbidden, "users can only manage their own account")
	ErrCurrentPassword    = sharederrors.New(sharederrors.KindInvalidArgument, "current password does not match")
	ErrPasswordMismatch   = sharederrors.New(sharederrors.KindInvalidArgument, "password does not match")
)

const (
	minPasswordLength = 8
	maxPasswordLength = 20
)

var validate = validator.New()

// User is an account holder, either a customer or a shop owner.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         identity.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser expects an already hashed password.
func NewUser(email, passwordHash string, role identity.Role) (*User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if role != identity.RoleOwner {
		role = identity.RoleUser
	}
	return &User{Email: email, PasswordHash: passwordHash, Role: role}, nil
}

func (u *User) Principal() identity.Principal {
	return identity.Principal{ID: u.ID, Role: u.Role}
}

// NormalizeEmail trims and lower-cases an address after checking its format.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidatePassword requires 8 to 20 printable ASCII characters with at least one letter,
// one digit and one punctuation or symbol character.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	var letter, digit, special bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return ErrWeakPassword
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		default:
			return ErrWeakPassword
		}
	}
	if !letter || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}
