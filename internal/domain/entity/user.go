// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the sole entity in the system: one row of the 'users' relation.
// PasswordHash never leaves the persistence and usecase layers; the delivery
// layer only ever sees the public projection built by the usecase.
type User struct {
	ID           int64     // Surrogate primary key, assigned by the store on creation.
	Username     string    // Unique login handle, required.
	Email        string    // Unique contact address, required. Login identifier.
	FullName     string    // Display name, required. Target of substring search.
	PasswordHash string    // Salted one-way bcrypt digest. Never the plaintext.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
