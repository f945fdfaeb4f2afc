package forum

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/askme/backend/internal/database"
	"github.com/emilythestrangee/askme/backend/internal/models"
)

// NewUser carries the registration fields.
type NewUser struct {
	Login    string
	Email    string
	Nickname string
	Password string
	Avatar   string
}

func (s *Service) CreateUser(ctx context.Context, in NewUser) (models.User, error) {
	if strings.TrimSpace(in.Login) == "" {
		return models.User{}, invalid("login field is empty")
	}
	if strings.TrimSpace(in.Email) == "" {
		return models.User{}, invalid("email field is empty")
	}
	if in.Password == "" {
		return models.User{}, invalid("password field is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, errors.Wrap(err, "hash password")
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatar
	}
	user := models.User{
		Username: in.Login,
		Email:    in.Email,
		Nickname: in.Nickname,
		Password: string(hash),
		Avatar:   avatar,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := exists(tx, "username = ?", in.Login); err != nil || taken {
			return firstErr(err, ErrUsernameTaken)
		}
		if taken, err := exists(tx, "email = ?", in.Email); err != nil || taken {
			return firstErr(err, ErrEmailTaken)
		}
		err := tx.Create(&user).Error
		if database.IsUniqueViolation(err) {
			// lost a race with a concurrent registration
			return ErrConflict
		}
		return errors.Wrap(err, "insert user")
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

func exists(tx *gorm.DB, query string, arg interface{}) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check user uniqueness")
	}
	return count > 0, nil
}

func firstErr(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}

// Authenticate checks a login and password pair.
func (s *Service) Authenticate(ctx context.Context, login, password string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

// EditProfile updates the actor's email, nickname and avatar. Empty values
// keep the stored ones.
func (s *Service) EditProfile(ctx context.Context, actor Actor, email, nickname, avatar string) (models.User, error) {
	if !actor.Authenticated() {
		return models.User{}, ErrUnauthorized
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, actor.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "look up user")
		}

		updates := map[string]interface{}{}
		if email != "" && email != user.Email {
			taken, err := exists(tx, "email = ?", email)
			if err != nil {
				return err
			}
			if taken {
				return ErrEmailTaken
			}
			updates["email"] = email
		}
		if nickname != "" {
			updates["nickname"] = nickname
		}
		if avatar != "" {
			updates["avatar"] = avatar
		}
		if len(updates) == 0 {
			return nil
		}

		err = tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		if err != nil {
			return errors.Wrap(err, "update profile")
		}
		return tx.First(&user, user.ID).Error
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) UserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "look up user")
	}
	return user, nil
}
