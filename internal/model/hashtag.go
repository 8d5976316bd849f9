package model

// HashTag : тег, уникальный по имени. Дедупликация выполняется
// при создании (upsert по tag_name).
type HashTag struct {
	ID      int64  `db:"id" json:"id"`
	TagName string `db:"tag_name" json:"tag_name"`
}
