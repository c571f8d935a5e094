// Package account holds the sign-up form logic. Nothing is stored: the form
// only validates the email and greets the trainer.
package account

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidEmail = errors.New("invalid email")

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)

type Request struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Registration is the receipt of an accepted form.
type Registration struct {
	ID    string
	Name  string
	Email string
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Register checks the form the way the sign-up page does and returns a
// throwaway receipt; no account is created anywhere.
func Register(req Request, logger *zap.Logger) (Registration, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !ValidEmail(req.Email) {
		return Registration{}, ErrInvalidEmail
	}

	name := strings.TrimSpace(strings.Join([]string{strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)}, " "))
	reg := Registration{
		ID:    uuid.NewString(),
		Name:  name,
		Email: req.Email,
	}
	logger.Info("registration accepted", zap.String("email", reg.Email), zap.String("id", reg.ID))
	return reg, nil
}
