package model

import "time"

// JudgeCredential 远程评测账号凭证, 全局至多一条生效记录
type JudgeCredential struct {
	ID              uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Handle          string    `json:"handle" gorm:"type:varchar(64);not null"`
	EncryptedSecret string    `json:"-" gorm:"type:text;not null"`
	LinkedBy        uint64    `json:"linked_by" gorm:"not null"`
	ValidatedAt     time.Time `json:"validated_at" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}

func (JudgeCredential) TableName() string {
	return "judge_credential"
}

type LinkCredentialParam struct {
	CommonParam `json:"-"`

	Secret string `json:"secret" binding:"required"`
}

type LinkCredentialResponse struct {
	Handle      string    `json:"handle"`
	ValidatedAt time.Time `json:"validated_at"`
}

type CredentialStatusResponse struct {
	Linked      bool       `json:"linked"`
	Handle      string     `json:"handle,omitempty"`
	LinkedBy    uint64     `json:"linked_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}
