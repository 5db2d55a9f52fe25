package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/balandzxc/tindahan-pos/internal/domain/entity"
	"github.com/balandzxc/tindahan-pos/internal/infrastructure/repository"
	"github.com/balandzxc/tindahan-pos/pkg/apperror"
	"github.com/balandzxc/tindahan-pos/pkg/utils"
)

// UserService manages POS operators and their PIN logins. PINs are
// stored bcrypt-hashed; a successful login yields a local session
// token carrying the cashier's identity and role.
type UserService struct {
	store    *repository.DataStore
	validate *validator.Validate
	tokens   *utils.TokenManager
	log      *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(store *repository.DataStore, tokens *utils.TokenManager, log *zap.Logger) *UserService {
	return &UserService{
		store:    store,
		validate: validator.New(),
		tokens:   tokens,
		log:      log.Named("users"),
	}
}

// AddUserInput is the input for creating an operator.
type AddUserInput struct {
	Name     string      `validate:"required"`
	Username string      `validate:"required,min=3"`
	PIN      string      `validate:"required,min=4,max=8,numeric"`
	Role     entity.Role `validate:"oneof=admin manager cashier"`
}

// AddUser creates an operator with a hashed PIN.
func (s *UserService) AddUser(input AddUserInput) (entity.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return entity.User{}, asValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return entity.User{}, err
	}

	user, err := s.store.AddUser(entity.User{
		Name:     input.Name,
		Username: input.Username,
		PINHash:  string(hash),
		Role:     input.Role,
	})
	if err != nil {
		return entity.User{}, err
	}

	s.log.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUserInput carries a partial user edit; nil fields are left
// unchanged. A non-nil PIN is re-hashed.
type UpdateUserInput struct {
	Name   *string
	PIN    *string `validate:"omitempty,min=4,max=8,numeric"`
	Role   *entity.Role
	Active *bool
}

// UpdateUser applies a partial edit to an operator.
func (s *UserService) UpdateUser(id uuid.UUID, input UpdateUserInput) (entity.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return entity.User{}, asValidationError(err)
	}
	if input.Role != nil {
		switch *input.Role {
		case entity.RoleAdmin, entity.RoleManager, entity.RoleCashier:
		default:
			return entity.User{}, apperror.NewBadRequestError("Unknown role " + string(*input.Role))
		}
	}

	return s.store.UpdateUser(id, func(u *entity.User) error {
		if input.Name != nil {
			u.Name = *input.Name
		}
		if input.PIN != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.PIN), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u.PINHash = string(hash)
		}
		if input.Role != nil {
			u.Role = *input.Role
		}
		if input.Active != nil {
			u.Active = *input.Active
		}
		return nil
	})
}

// DeleteUser removes an operator.
func (s *UserService) DeleteUser(id uuid.UUID) error {
	return s.store.DeleteUser(id)
}

// Users returns all operators.
func (s *UserService) Users() []entity.User {
	return s.store.Users()
}

// Session is the result of a successful login.
type Session struct {
	User  entity.User
	Token string
}

// Authenticate checks a username/PIN pair and issues a session token.
// Unknown users, wrong PINs and deactivated accounts all return the
// same credentials error.
func (s *UserService) Authenticate(username, pin string) (Session, error) {
	user, err := s.store.UserByUsername(username)
	if err != nil {
		return Session{}, apperror.ErrInvalidCredentials
	}
	if !user.Active {
		return Session{}, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(pin)); err != nil {
		return Session{}, apperror.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return Session{}, err
	}

	s.log.Info("user logged in", zap.String("username", user.Username))
	return Session{User: user, Token: token}, nil
}

// ValidateSession resolves a session token back to its claims.
func (s *UserService) ValidateSession(token string) (*utils.SessionClaims, error) {
	claims, err := s.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return claims, nil
}
