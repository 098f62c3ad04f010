package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthsphere-api/internal/converter"
	"healthsphere-api/internal/delivery/dto"
	"healthsphere-api/internal/delivery/http/middleware"
	"healthsphere-api/internal/domain/entity"
	"healthsphere-api/internal/domain/repository"
	"healthsphere-api/internal/service"
	"healthsphere-api/pkg/jwt"
	"healthsphere-api/pkg/otp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.TokenResponse, error)
	ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	mailer       service.Mailer
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	mailer service.Mailer,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		mailer:       mailer,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

// Register creates an unverified account with an outstanding OTP and sends
// the code by email after the commit. A mail failure does not roll back the
// registration; the flow degrades to "OTP generated but not confirmed
// delivered".
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	code, err := otp.Generate()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		RoleID:   entity.RoleIDPatient,
	}
	user.IssueOTP(code, time.Now().Add(otp.TTL))

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.mailer.SendOTPAsync(user.Email, user.Name, code)

	return &dto.RegisterResponse{UserID: user.ID}, nil
}

// VerifyEmail transitions the account to verified when the submitted code
// matches and has not expired, then issues a token pair. Expired and
// mismatched codes fail with distinct errors (entity.ErrOTPExpired,
// entity.ErrOTPMismatch).
func (u *authUsecase) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := user.VerifyOTP(req.OTP, time.Now()); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"is_verified": true,
		"otp":         nil,
		"otp_expiry":  nil,
	}
	if err := u.userRepo.UpdateByID(u.db.WithContext(ctx), user.ID, fields); err != nil {
		u.log.Warnf("Failed to mark user %s verified: %+v", user.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserVerify, "user", user.ID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Email verified: user=%s", user.ID)
	return u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
}

// ResendOTP issues a fresh code, unconditionally overwriting any outstanding
// one. No rate limiting is applied.
func (u *authUsecase) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.reissueOTP(ctx, user); err != nil {
		return err
	}

	return nil
}

// Login authenticates a patient or admin account. An unverified account
// short-circuits into re-issuing and re-sending an OTP instead of a hard
// deny; the response then carries a verification demand rather than tokens.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		if err := u.reissueOTP(ctx, user); err != nil {
			return nil, err
		}
		return &dto.LoginResponse{
			RequireVerification: true,
			UserID:              &user.ID,
		}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.LoginResponse{Token: tokens}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshTokenID string) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:*:%s", accessTokenID),
		fmt.Sprintf("refresh_token:*:%s", refreshTokenID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.SubjectID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is spent
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.SubjectID, claims.Email, claims.RoleID)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userID, ok := middleware.GetSubjectIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	fields := map[string]interface{}{
		"name":          req.Name,
		"phone":         req.Phone,
		"date_of_birth": req.DateOfBirth,
		"gender":        req.Gender,
	}
	if req.Address != nil {
		fields["address"] = entity.JSON(req.Address)
	}
	if req.ImageURL != "" {
		fields["image_url"] = req.ImageURL
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.UpdateByID(tx, userID, fields); err != nil {
		u.log.Warnf("Failed to update profile for user %s: %+v", userID, err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "user", userID.String(), nil, fields); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// reissueOTP stores a fresh code on the account and dispatches the mail
// after the write. The overwrite is unconditional.
func (u *authUsecase) reissueOTP(ctx context.Context, user *entity.User) error {
	code, err := otp.Generate()
	if err != nil {
		u.log.Warnf("Failed to generate OTP: %+v", err)
		return err
	}
	expiry := time.Now().Add(otp.TTL)

	fields := map[string]interface{}{
		"otp":        code,
		"otp_expiry": expiry,
	}
	if err := u.userRepo.UpdateByID(u.db.WithContext(ctx), user.ID, fields); err != nil {
		u.log.Warnf("Failed to store OTP for user %s: %+v", user.ID, err)
		return err
	}

	u.mailer.SendOTPAsync(user.Email, user.Name, code)
	return nil
}

func (u *authUsecase) issueTokens(ctx context.Context, subjectID uuid.UUID, email string, roleID int) (*dto.TokenResponse, error) {
	return issueTokensFor(ctx, u.log, u.jwtService, u.redisClient, subjectID, email, roleID)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
