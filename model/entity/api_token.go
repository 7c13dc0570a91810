package entity

import "time"

// ApiToken represents api_token table (bearer tokens for the ops console API)
type ApiToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey;autoIncrement" json:"token_id,omitempty"`
	Type      string    `gorm:"column:type;type:varchar(16);not null;default:'access'" json:"type"`
	Token     string    `gorm:"column:token;type:varchar(64);not null;uniqueIndex" json:"token"`
	Secret    string    `gorm:"column:secret;type:varchar(128);not null" json:"-"`
	Revoked   uint16    `gorm:"column:revoked;type:smallint unsigned;not null;default:0" json:"revoked"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ApiToken) TableName() string {
	return "api_token"
}
