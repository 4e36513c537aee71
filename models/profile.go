// file: models/profile.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Profile is one account. The id is an opaque uuid owned by the identity
// layer; points only ever increase.
type Profile struct {
	ID        string    `gorm:"type:char(36);primarykey" json:"id"`
	Username  string    `gorm:"size:50;unique;not null" json:"username"`
	Email     string    `gorm:"size:100;unique;not null" json:"-"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null;default:'user'" json:"role"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns the uuid and hashes the password. Later password
// changes go through HashPassword explicitly so updates never double-hash.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	hashed, err := HashPassword(p.Password)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

func (p *Profile) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
	return err == nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// InternalEmail synthesizes the hidden email-shaped identifier the identity
// layer requires for an account that only has a username.
func InternalEmail(username, domain string) string {
	return fmt.Sprintf("%s@%s", strings.ToLower(strings.TrimSpace(username)), domain)
}
