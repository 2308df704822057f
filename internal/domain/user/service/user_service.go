package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"bbq_ordering/internal/domain/user/model"
	"bbq_ordering/internal/domain/user/repository"
	"bbq_ordering/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrAuthFailed   = errors.New("invalid username or password")
	ErrUserNotFound = errors.New("user not found")
)

type UserService interface {
	// BusinessLogin 商家按用户名+密码登录
	BusinessLogin(username, password string) (string, *model.User, error)
	// CustomerLogin 顾客按手机号登录，手机号未注册时自动建号
	CustomerLogin(phone, password string) (string, *model.User, error)
	GetProfile(userID uint) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func hashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *userService) BusinessLogin(username, password string) (string, *model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrAuthFailed
		}
		return "", nil, err
	}
	if user.Role != model.RoleBusiness || user.Password != hashPassword(password) {
		return "", nil, ErrAuthFailed
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) CustomerLogin(phone, password string) (string, *model.User, error) {
	user, err := s.repo.GetByPhone(phone)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
		// 首次登录自动注册
		user = &model.User{
			Username: fmt.Sprintf("user_%d_%04d", time.Now().UnixMilli(), rand.Intn(10000)),
			Password: hashPassword(password),
			Role:     model.RoleCustomer,
			Phone:    phone,
		}
		if err := s.repo.Create(user); err != nil {
			return "", nil, err
		}
	} else if user.Password != hashPassword(password) {
		return "", nil, ErrAuthFailed
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
