package service

import (
	"context"
	"time"

	"github.com/Nix128/asisten-pengawasan-apip/internal/dto"
	"github.com/Nix128/asisten-pengawasan-apip/internal/pkg/logger"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/specification"
	"github.com/Nix128/asisten-pengawasan-apip/internal/repository/unitofwork"
	"github.com/Nix128/asisten-pengawasan-apip/pkg/events"
	pktNats "github.com/Nix128/asisten-pengawasan-apip/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtSecret      string
	tokenExpiry    time.Duration
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	jwtSecret string,
	tokenExpiry time.Duration,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		jwtSecret:      jwtSecret,
		tokenExpiry:    tokenExpiry,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// User tak dikenal dan password salah mengembalikan error yang sama;
	// jangan bocorkan username mana yang terdaftar.
	user, err := uow.UserRepository().FindOne(ctx,
		specification.ByUsernameOrEmail{Identifier: req.Username},
	)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiry := s.tokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewAuditEvent(events.EventUserLogin, map[string]interface{}{
			"user_id": user.Id,
			"device":  userAgent,
			"ip":      ipAddress,
			"time":    time.Now().Format(time.RFC822),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("auth", "Failed to publish USER_LOGIN event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.LoginResponse{
		Token: signedToken,
		User: dto.UserDTO{
			Id:          user.Id,
			Username:    user.Username,
			Role:        user.Role,
			Permissions: user.Permissions,
		},
	}, nil
}
