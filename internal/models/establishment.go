package models

import "time"

type Establishment struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"size:150;not null" json:"name"`
	Document   string  `gorm:"size:30" json:"document"`
	CEP        string  `gorm:"size:10" json:"cep"`
	Address    string  `gorm:"size:255" json:"address"`
	ServiceTax float64 `gorm:"not null;default:0" json:"service_tax"` // percent, e.g. 10 = 10%
	LogoURL    string  `gorm:"size:255" json:"logo_url"`

	// Menu theming, applied client-side.
	ThemeBackground     string `gorm:"size:30" json:"theme_background"`
	ThemeCardBackground string `gorm:"size:30" json:"theme_card_background"`
	ThemeTextColor      string `gorm:"size:30" json:"theme_text_color"`
	ThemePrimaryColor   string `gorm:"size:30" json:"theme_primary_color"`
	ThemeAccentColor    string `gorm:"size:30" json:"theme_accent_color"`

	// Set by the close-day operation; windows the daily stats.
	LastClosureAt *time.Time `json:"last_closure_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Admins  []Admin  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Waiters []Waiter `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
