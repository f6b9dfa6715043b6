package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/auth"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/validation"
)

const bcryptCost = 10

// LoginResult carries a fresh access token together with the authenticated user.
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        *model.User `json:"user"`
}

// AuthService handles registration, login, and identity lookups.
type AuthService interface {
	Register(ctx context.Context, req *validation.SignupRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password. A duplicate email is
// a Conflict, whether caught by the lookup or by the unique index.
func (s *authService) Register(ctx context.Context, req *validation.SignupRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, apperrors.Conflict("User already exists")
	}
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a short-lived access token. An
// unknown email and a wrong password produce the same error, so responses
// never reveal which part was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid login credentials")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &LoginResult{AccessToken: accessToken, User: user}, nil
}

// GetUserByID loads a user record by id.
func (s *authService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
