package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Heading    string    `json:"heading"`
	PostBody   string    `json:"postBody" gorm:"type:text"`
	CoverImage string    `json:"coverImage"`
	AuthorID   uuid.UUID `json:"-" gorm:"type:uuid;index;not null"`
	Author     User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsAuthoredBy is the ownership check every mutation runs before touching the post.
func (p *Post) IsAuthoredBy(userID uuid.UUID) bool {
	return p.AuthorID == userID
}
