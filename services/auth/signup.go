package auth

import (
	"context"
	"errors"

	"tablenow/models"
	"tablenow/services/session"

	"go.uber.org/zap"
)

func (s *DefaultAuthService) RegisterUser(ctx context.Context, deviceID string, input SignupInput) (*models.UserRecord, error) {
	if input.Phone != "" {
		input.Phone = FormatDanishPhone(input.Phone)
	}
	if verr := ValidateSignup(input); verr != nil {
		return nil, verr
	}

	s.Store.Dispatch(deviceID, session.AuthPending)

	providerUser, err := s.Provider.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, s.rejectAuth(deviceID, err)
	}

	if err := s.verifyProviderToken(ctx, providerUser); err != nil {
		return nil, s.rejectAuth(deviceID, err)
	}

	exchange, err := s.Backend.Signup(ctx, input.FirstName, providerUser.Email, providerUser.IDToken)
	if err != nil {
		s.Logger.Error("signup: backend exchange failed", zap.Error(err))
		return nil, s.rejectAuth(deviceID, err)
	}

	user := unifyRecord(providerUser, exchange.Token, exchange.User)
	s.completeLogin(ctx, deviceID, user)
	return user, nil
}

// rejectAuth records the failure in the auth slice and maps provider errors
// to their user-facing form.
func (s *DefaultAuthService) rejectAuth(deviceID string, err error) error {
	var perr *ProviderError
	if errors.As(err, &perr) {
		err = &ProviderError{Code: perr.Code, Message: friendlyProviderMessage(perr)}
	}
	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		return session.AuthRejected(snap, err.Error())
	})
	return err
}

// verifyProviderToken checks the ID token's integrity when a verifier is
// configured.
func (s *DefaultAuthService) verifyProviderToken(ctx context.Context, user *ProviderUser) error {
	if s.Verifier == nil {
		return nil
	}
	if _, err := s.Verifier.VerifyIDToken(ctx, user.IDToken); err != nil {
		s.Logger.Error("provider token failed verification", zap.Error(err))
		return err
	}
	return nil
}
