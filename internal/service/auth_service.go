package service

import (
	"alcyxob/gym-app/internal/domain"
	"alcyxob/gym-app/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidRole          = errors.New("role must be admin, trainer or member")
)

// RegisterInput carries everything a new account may supply. The member
// profile fields are only consulted when Role is member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role

	// Member profile (optional)
	DOB            *time.Time
	Gender         string
	MembershipType domain.MembershipType
	IDProof        string

	// Trainer profile (optional)
	Specialization string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	GetJWTSecret() string
}

type authService struct {
	userRepo      repository.UserRepository
	memberRepo    repository.MemberRepository
	trainerRepo   repository.TrainerRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, memberRepo repository.MemberRepository, trainerRepo repository.TrainerRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 168
	}
	return &authService{
		userRepo:      userRepo,
		memberRepo:    memberRepo,
		trainerRepo:   trainerRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates the account and, depending on the role, provisions the
// matching member or trainer profile in the same call.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}
	if input.Role == "" {
		input.Role = domain.RoleMember
	}
	switch input.Role {
	case domain.RoleAdmin, domain.RoleTrainer, domain.RoleMember:
	default:
		return nil, ErrInvalidRole
	}

	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index closes the race between the existence
		// check above and this insert.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	switch input.Role {
	case domain.RoleMember:
		if err := s.provisionMember(ctx, userID, input); err != nil {
			log.WithError(err).WithField("userId", userID.Hex()).Error("failed to provision member profile")
			return nil, err
		}
	case domain.RoleTrainer:
		if err := s.provisionTrainer(ctx, userID, input.Specialization); err != nil {
			log.WithError(err).WithField("userId", userID.Hex()).Error("failed to provision trainer profile")
			return nil, err
		}
	}

	user.PasswordHash = ""
	return user, nil
}

// provisionMember creates the member profile for a freshly registered
// account. A missing membership type defaults to monthly with the expiry
// one month out.
func (s *authService) provisionMember(ctx context.Context, userID primitive.ObjectID, input RegisterInput) error {
	mt := input.MembershipType
	if mt == "" {
		mt = domain.MembershipMonthly
	}
	now := time.Now()
	expiry := now.AddDate(0, 1, 0)
	if mt == domain.MembershipYearly {
		expiry = now.AddDate(1, 0, 0)
	}

	member := &domain.Member{
		UserID:         userID,
		Gender:         input.Gender,
		MembershipType: mt,
		ExpiryDate:     expiry,
		IDProof:        input.IDProof,
	}
	if input.DOB != nil {
		member.DOB = *input.DOB
	}

	_, err := s.memberRepo.Create(ctx, member)
	return err
}

func (s *authService) provisionTrainer(ctx context.Context, userID primitive.ObjectID, specialization string) error {
	if specialization == "" {
		specialization = domain.DefaultSpecialization
	}
	_, err := s.trainerRepo.Create(ctx, &domain.Trainer{
		UserID:         userID,
		Specialization: specialization,
	})
	return err
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication.
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
