package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"bookcatalog/models"
	"bookcatalog/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookStore is the repository surface the handlers need. *store.DB
// implements it; tests substitute fakes.
type BookStore interface {
	InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	BooksByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Book, error)
	ToggleBookLike(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	UpdateBooksByCategory(ctx context.Context, categoryID primitive.ObjectID, fields bson.M) (int64, error)
	DeleteBooksByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	CategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	ReviewsForBook(ctx context.Context, bookID primitive.ObjectID) ([]models.ReviewWithUser, error)
	LikeCountForBook(ctx context.Context, bookID primitive.ObjectID) (int64, error)
}

// Uploader is the media-host surface. *service.S3Service implements it.
type Uploader interface {
	Upload(ctx context.Context, folder, originalFilename string, body io.Reader, contentType string) (service.UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, string, error)
}

type BooksHandler struct {
	DB       BookStore
	Uploader Uploader
	MaxBytes int64
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the {"message": ..., "error": ...} body the API has
// always used. The driver error text is echoed as-is.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}
