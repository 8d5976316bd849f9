package model

import "time"

// TokensPair содержит пару access и refresh токенов.
// Access токен самодостаточен (подписанные claims), refresh токен -
// случайная строка, валидность которой определяется только записью
// RT:<uuid> в credential store.
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для получения новой пары)
	// example: vcSi0369y1I62wOpxZFpgZ...
	RefreshToken string `json:"refreshToken"`

	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
