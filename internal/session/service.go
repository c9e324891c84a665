package session

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/nmoreyra/cartelera/internal/api"
	"github.com/nmoreyra/cartelera/internal/domain"
)

// Service drives login, registration and profile operations against the
// backend's user endpoints.
type Service interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, creds domain.Credentials) (*Session, error)

	// Register creates an account and logs the new user in.
	Register(ctx context.Context, reg domain.Registration) (*Session, error)

	// Profile fetches the authenticated user's current profile.
	Profile(ctx context.Context) (*domain.User, error)

	// UpdateProfile updates the profile and returns the new record.
	UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error)

	// ChangePassword changes the authenticated user's password.
	ChangePassword(ctx context.Context, current, updated string) error
}

type service struct {
	client *api.Client
}

// NewService creates a session service backed by the gateway client.
func NewService(client *api.Client) Service {
	return &service{client: client}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct's validate tags and folds failures into
// a domain.ValidationError keyed by the form field name.
func validateStruct(op string, v any, fieldLabels map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, op, "validation failed")
	}

	var out error
	for _, fe := range verrs {
		field, ok := fieldLabels[fe.StructField()]
		if !ok {
			field = fe.StructField()
		}

		message := "This field is required"
		switch fe.Tag() {
		case "email":
			message = "Enter a valid email address"
		case "min":
			message = "Password must be at least 6 characters"
		}
		out = domain.AddFieldError(out, field, message)
	}
	return out
}

var credentialFields = map[string]string{
	"Email":    "email",
	"Password": "password",
}

var registrationFields = map[string]string{
	"Name":     "name",
	"Surname":  "surname",
	"Email":    "email",
	"Phone":    "phone",
	"Password": "password",
}

// loginResponse is the backend's login envelope.
type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *service) Login(ctx context.Context, creds domain.Credentials) (*Session, error) {
	if err := validateStruct("session.login", creds, credentialFields); err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := s.client.Post(ctx, "/users/login", creds, &resp); err != nil {
		if domain.IsCode(err, domain.EUNAUTHORIZED) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if resp.Token == "" {
		return nil, domain.Errorf(domain.EINTERNAL, "session.login", "backend returned no token")
	}

	return &Session{Token: resp.Token, User: resp.User}, nil
}

func (s *service) Register(ctx context.Context, reg domain.Registration) (*Session, error) {
	if err := validateStruct("session.register", reg, registrationFields); err != nil {
		return nil, err
	}

	if err := s.client.Post(ctx, "/users/register", reg, nil); err != nil {
		if domain.IsCode(err, domain.ECONFLICT) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	// Log the fresh account in so the customer lands signed in.
	return s.Login(ctx, domain.Credentials{Email: reg.Email, Password: reg.Password})
}

func (s *service) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := s.client.Get(ctx, "/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *service) UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error) {
	var updated domain.User
	if err := s.client.Put(ctx, "/users/profile", user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *service) ChangePassword(ctx context.Context, current, updated string) error {
	req := changePasswordRequest{CurrentPassword: current, NewPassword: updated}
	return s.client.Put(ctx, "/users/password", req, nil)
}
