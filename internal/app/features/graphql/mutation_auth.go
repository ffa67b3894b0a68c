package graphql

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/taskboard/internal/app/store/users"
	"github.com/dalemusser/taskboard/internal/app/system/apperr"
	"github.com/dalemusser/taskboard/internal/app/system/authutil"
	"github.com/dalemusser/taskboard/internal/app/system/inputval"
	"github.com/dalemusser/taskboard/internal/app/system/normalize"
	"github.com/dalemusser/taskboard/internal/app/system/timeouts"
	"github.com/dalemusser/taskboard/internal/domain/models"
	"go.uber.org/zap"
)

type signUpInput struct {
	Email    string
	Password string
	Name     string
	Avatar   *string
}

type signInInput struct {
	Email    string
	Password string
}

var errInternal = errors.New("internal error")

// SignUp creates an account and returns it with a fresh token.
func (r *rootResolver) SignUp(ctx context.Context, args struct{ Input signUpInput }) (*authUserResolver, error) {
	h := r.h
	in := args.Input

	email := normalize.Email(in.Email)
	if !inputval.IsValidEmail(email) {
		return nil, apperr.InvalidInput("Please provide a valid email address")
	}
	if in.Password == "" {
		return nil, apperr.InvalidInput("Password is required")
	}
	if authutil.PasswordTooLong(in.Password) {
		return nil, apperr.InvalidInput("Password must be at most %d bytes", authutil.MaxPasswordBytes)
	}
	name := cleanText(in.Name)
	if name == "" {
		return nil, apperr.InvalidInput("Name is required")
	}
	var avatar *string
	if in.Avatar != nil {
		if a := normalize.Name(*in.Avatar); a != "" {
			avatar = &a
		}
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "users.sign_up")
	defer cancel()

	taken, err := h.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, h.storageErr("users.email_exists", err)
	}
	if taken {
		return nil, apperr.ErrEmailTaken
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.Log.Error("hash password", zap.Error(err))
		return nil, errInternal
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Avatar:   avatar,
	})
	if err != nil {
		// lost a race with a concurrent sign-up for the same email
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, h.storageErr("users.create", err)
	}
	h.loadersFor(ctx).clear()

	h.Log.Info("user signed up", zap.String("user_id", u.ID.Hex()))
	return h.authPayload(&u)
}

// SignIn verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password produce the same error.
func (r *rootResolver) SignIn(ctx context.Context, args struct{ Input signInInput }) (*authUserResolver, error) {
	h := r.h
	email := normalize.Email(args.Input.Email)

	if h.SignIn != nil {
		reason, err := h.SignIn.Check(ctx, email)
		if err != nil {
			// throttle backend down: let the attempt through
			h.Log.Warn("sign-in throttle unavailable", zap.Error(err))
		} else if reason != "" {
			h.Log.Info("sign-in throttled", zap.String("email", email))
			return nil, apperr.RateLimited(reason)
		}
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), h.Log, "users.sign_in")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, h.storageErr("users.get_by_email", err)
	}
	if err := authutil.CheckPassword(u.Password, args.Input.Password); err != nil {
		if !errors.Is(err, authutil.ErrMismatch) {
			h.Log.Warn("stored password hash unusable", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
		return nil, apperr.ErrInvalidCredentials
	}

	if h.SignIn != nil {
		if err := h.SignIn.ResetEmail(ctx, email); err != nil {
			h.Log.Warn("reset sign-in throttle", zap.Error(err))
		}
	}
	return h.authPayload(u)
}

func (h *Handler) authPayload(u *models.User) (*authUserResolver, error) {
	tok, err := h.Tokens.Issue(u.ID)
	if err != nil {
		h.Log.Error("issue token", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		return nil, errInternal
	}
	return &authUserResolver{user: u, token: tok}, nil
}
