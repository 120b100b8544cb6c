package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageSet is the current image shape: one cover plus an ordered gallery.
type ImageSet struct {
	CoverImage  string   `bson:"coverImage" json:"coverImage"`
	OtherImages []string `bson:"otherImages" json:"otherImages"`
}

type AuthorDetails struct {
	Name  string `bson:"name" json:"name"`
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`
	Info  string `bson:"info,omitempty" json:"info,omitempty"`
}

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	About         []string           `bson:"about" json:"about"`
	Language      string             `bson:"language" json:"language"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Images        ImageSet           `bson:"images" json:"images"`
	PDF           []string           `bson:"pdf" json:"pdf,omitempty"`
	AuthorDetails AuthorDetails      `bson:"authorDetails" json:"authorDetails"`
	Like          bool               `bson:"like" json:"like"`
	IsSubscribed  bool               `bson:"isSubscribed" json:"isSubscribed"`
	// Media-host object keys, kept so assets can be deleted later.
	ImageKeys []string  `bson:"imageKeys,omitempty" json:"-"`
	PDFKeys   []string  `bson:"pdfKeys,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
