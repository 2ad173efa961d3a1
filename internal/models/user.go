package models

import (
	"time"
)

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword    string    `json:"-" gorm:"not null"`
	IsActive          bool      `json:"isActive" gorm:"default:true"`
	IsOpsUser         bool      `json:"isOpsUser" gorm:"default:false"`
	IsVerified        bool      `json:"isVerified" gorm:"default:false"`
	VerificationToken *string   `json:"-" gorm:"uniqueIndex"` // nil once verified
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
