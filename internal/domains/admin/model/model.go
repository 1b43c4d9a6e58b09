package model

import "hotel/shared/model"

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
)

// Admin is a console account. Responses never embed it directly, the hash stays server side.
type Admin struct {
	ID           string `db:"id"            json:"id"`
	Username     string `db:"username"      json:"username"`
	Email        string `db:"email"         json:"email"`
	PasswordHash string `db:"password_hash" json:"password_hash"`
	model.Metadata
}
