package userservice

import (
	"database/sql"
	"slices"
	"time"

	"github.com/sushihentaime/newsportal/internal/common"
)

type tokenScope string

// TokenScopeActivate marks the single-use token mailed after signup.
const TokenScopeActivate tokenScope = "token:activate"

// Token lifetimes.
const (
	ActivationTokenTime time.Duration = 3 * 24 * time.Hour
	AccessTokenTime     time.Duration = 7 * 24 * time.Hour
	RefreshTokenTime    time.Duration = 30 * 24 * time.Hour
)

type Permission string

// PermissionWritePost is granted by the upgrade to author. It covers posts, categories and products.
const PermissionWritePost Permission = "post:write"

type Permissions []Permission

func (ps Permissions) Include(p Permission) bool {
	return slices.Contains(ps, p)
}

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
}

type DBModel struct {
	db *sql.DB
}

// AnonymousUser stands in for requests without a bearer token. Compare by address.
var AnonymousUser = User{}

type User struct {
	ID          int         `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Password    Password    `json:"-"`
	Activated   bool        `json:"activated"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Version     int         `json:"version"`
	Permissions Permissions `json:"permissions"`
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func (u *User) IsActivated() bool {
	return u.Activated
}

// IsAuthor reports whether the user went through the upgrade.
func (u *User) IsAuthor() bool {
	return u.HasPermission(PermissionWritePost)
}

func (u *User) HasPermission(permission Permission) bool {
	return u.Permissions.Include(permission)
}

// Password keeps the plain text only between signup and hashing.
type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

type Token struct {
	Plain  string     `json:"token"`
	Hash   []byte     `json:"-"`
	UserID int        `json:"-"`
	Expiry time.Time  `json:"expiry"`
	Scope  tokenScope `json:"-"`
}

// AuthToken is the access/refresh pair issued at login. Only the hashes are stored.
type AuthToken struct {
	AccessTokenPlain   string    `json:"access_token"`
	AccessTokenHash    []byte    `json:"-"`
	RefreshTokenPlain  string    `json:"refresh_token"`
	RefreshTokenHash   []byte    `json:"-"`
	UserID             int       `json:"user_id"`
	AccessTokenExpiry  time.Time `json:"access_token_expiry"`
	RefreshTokenExpiry time.Time `json:"refresh_token_expiry"`
}
