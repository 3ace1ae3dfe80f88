package entity

import "time"

// User ein Benutzerkonto eines Mandanten.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         string // "admin" | "buchhaltung" | "sachbearbeiter"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
