package model

import "time"

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Email        string    `db:"email" json:"email"`
	Nickname     string    `db:"nickname" json:"nickname"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const RoleUser = "ROLE_USER"
