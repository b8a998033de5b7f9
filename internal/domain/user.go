package domain

import (
	"time"

	"github.com/google/uuid"
)

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// User is owned by the profile service; this module only reads the delivery token
// and the preferred language.
type User struct {
	ID        uuid.UUID `json:"id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	FCMToken  *string   `json:"-" db:"fcm_token"`
	Language  string    `json:"language" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DeliveryToken returns "" when the user has not registered a push channel.
func (u *User) DeliveryToken() string {
	if u == nil || u.FCMToken == nil {
		return ""
	}
	return *u.FCMToken
}

// PreferredLanguage is English only when explicitly chosen; everything else is Arabic.
func (u *User) PreferredLanguage() Language {
	if u != nil && Language(u.Language) == LanguageEnglish {
		return LanguageEnglish
	}
	return LanguageArabic
}
