package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sushihentaime/newsportal/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
	}
}

// CreateUser creates a new user account and publishes a user.created event carrying the activation token.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) error {
	v := common.NewValidator()
	validateSignup(v, username, email, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return err
	}

	token, err := s.m.createToken(ctx, u.ID, ActivationTokenTime, TokenScopeActivate)
	if err != nil {
		return err
	}

	msg, err := json.Marshal(common.UserCreatedEvent{Email: u.Email, Token: token.Plain})
	if err != nil {
		return err
	}

	return s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
}

// ActivateUser activates a user account and deletes the activation token.
func (s *UserService) ActivateUser(ctx context.Context, token string) error {
	v := common.NewValidator()
	validateToken(v, token)
	if !v.Valid() {
		return v.ValidationError()
	}

	user, err := s.m.getUserByToken(ctx, TokenScopeActivate, hashToken(token))
	if err != nil {
		return err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.m.activateUserAccount(tx, ctx, user.ID, user.Version)
	if err != nil {
		return err
	}

	err = s.m.deleteToken(tx, ctx, user.ID, TokenScopeActivate)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoginUser checks the credentials and issues a fresh access and refresh token, replacing any previous ones.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, rejectUnknownUser(password)
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = s.m.deleteAuthTokens(tx, ctx, user.ID)
	if err != nil {
		return nil, err
	}

	authToken, err := s.m.createAuthToken(tx, ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return authToken, nil
}

func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	validateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByAccessToken(ctx, hashToken(token))
}

func (s *UserService) LogoutUser(ctx context.Context, userId int) error {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = s.m.deleteAuthTokens(tx, ctx, userId)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpgradeUser makes the user an author: it grants post:write and creates the author profile.
// Upgrading an author again returns the existing author id.
func (s *UserService) UpgradeUser(ctx context.Context, userId int) (int, error) {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	err = s.m.addUserPermission(tx, ctx, userId, PermissionWritePost)
	if err != nil {
		if common.ForeignKeyError(err, "") {
			return 0, ErrNotFound
		}
		return 0, err
	}

	authorId, err := s.m.upsertAuthor(tx, ctx, userId)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return authorId, nil
}
