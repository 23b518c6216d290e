package service

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/sync/errgroup"

	"blog_nest/internal/common"
)

const (
	msgUsernameLength = "Username must contain at least 3 characters"
	msgUsernameTaken  = "This username is already in use"
	msgEmailInvalid   = "must be a valid email address"
	msgEmailTaken     = "This email is already in use"
	msgPasswordWeak   = "Password must contain at least 8 characters, at least 1 lowercase character, at least 1 uppercase character, at least 1 number and at least 1 symbol"
	msgPasswordMatch  = "Passwords do not match!"
)

// validateSignUp runs every validator and aggregates the failures in field
// order. The uniqueness lookups hit the store concurrently and both complete
// before the result is assembled. The returned error is a store failure, not
// a validation result.
func (s *AuthService) validateSignUp(ctx context.Context, req SignUpRequest) (common.ValidationErrors, error) {
	var usernameTaken, emailTaken bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.users.FindByUsername(gctx, req.Username)
		if err == nil {
			usernameTaken = true
			return nil
		}
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		_, err := s.users.FindByEmail(gctx, req.Email)
		if err == nil {
			emailTaken = true
			return nil
		}
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("uniqueness lookup failed: %w", err)
	}

	var verrs common.ValidationErrors

	if err := validation.Validate(req.Username,
		validation.Required.Error(msgUsernameLength),
		validation.RuneLength(3, 0).Error(msgUsernameLength),
	); err != nil {
		verrs = append(verrs, common.FieldError{Field: "username", Message: msgUsernameLength})
	}
	if usernameTaken {
		verrs = append(verrs, common.FieldError{Field: "username", Message: msgUsernameTaken})
	}

	if err := validation.Validate(req.Email,
		validation.Required.Error(msgEmailInvalid),
		is.Email,
	); err != nil {
		verrs = append(verrs, common.FieldError{Field: "email", Message: msgEmailInvalid})
	}
	if emailTaken {
		verrs = append(verrs, common.FieldError{Field: "email", Message: msgEmailTaken})
	}

	if err := validation.Validate(req.Password, validation.By(strongPassword)); err != nil {
		verrs = append(verrs, common.FieldError{Field: "password", Message: msgPasswordWeak})
	}

	if err := validation.Validate(req.ConfirmPassword, validation.By(strongPassword)); err != nil {
		verrs = append(verrs, common.FieldError{Field: "confirmPassword", Message: msgPasswordWeak})
	} else if req.ConfirmPassword != req.Password {
		verrs = append(verrs, common.FieldError{Field: "confirmPassword", Message: msgPasswordMatch})
	}

	return verrs, nil
}

// strongPassword enforces the registration strength policy: minimum length 8
// with at least one lowercase, uppercase, digit and symbol rune.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if len(s) < 8 {
		return errors.New(msgPasswordWeak)
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return errors.New(msgPasswordWeak)
	}
	return nil
}
