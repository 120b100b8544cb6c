package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"bookcatalog/models"
	"bookcatalog/service"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory BookStore/UserStore for handler tests.
type fakeStore struct {
	books      map[primitive.ObjectID]*models.Book
	categories map[primitive.ObjectID]*models.Category
	reviews    map[primitive.ObjectID][]models.ReviewWithUser
	likes      map[primitive.ObjectID]int64
	users      map[string]*models.User

	inserted      []*models.Book
	updates       []bson.M
	deleteCalled  bool
	modifiedCount int64

	reviewsErr error
	likesErr   error
	insertErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		books:      make(map[primitive.ObjectID]*models.Book),
		categories: make(map[primitive.ObjectID]*models.Category),
		reviews:    make(map[primitive.ObjectID][]models.ReviewWithUser),
		likes:      make(map[primitive.ObjectID]int64),
		users:      make(map[string]*models.User),
	}
}

func (s *fakeStore) InsertBook(_ context.Context, book *models.Book) (primitive.ObjectID, error) {
	if s.insertErr != nil {
		return primitive.NilObjectID, s.insertErr
	}
	id := primitive.NewObjectID()
	book.ID = id
	s.inserted = append(s.inserted, book)
	s.books[id] = book
	return id, nil
}

func (s *fakeStore) BookByID(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	copied := *book
	return &copied, nil
}

func (s *fakeStore) BooksByCategory(_ context.Context, categoryID primitive.ObjectID) ([]models.Book, error) {
	var out []models.Book
	for _, book := range s.books {
		if book.Category == categoryID {
			out = append(out, *book)
		}
	}
	return out, nil
}

func (s *fakeStore) ToggleBookLike(_ context.Context, id primitive.ObjectID) (*models.Book, error) {
	book, ok := s.books[id]
	if !ok {
		return nil, nil
	}
	book.Like = !book.Like
	copied := *book
	return &copied, nil
}

func (s *fakeStore) UpdateBooksByCategory(_ context.Context, categoryID primitive.ObjectID, fields bson.M) (int64, error) {
	s.updates = append(s.updates, fields)
	if s.modifiedCount > 0 {
		return s.modifiedCount, nil
	}
	var n int64
	for _, book := range s.books {
		if book.Category == categoryID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) DeleteBooksByCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	s.deleteCalled = true
	var n int64
	for id, book := range s.books {
		if book.Category == categoryID {
			delete(s.books, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) CategoryByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.categories[id], nil
}

func (s *fakeStore) ReviewsForBook(_ context.Context, bookID primitive.ObjectID) ([]models.ReviewWithUser, error) {
	if s.reviewsErr != nil {
		return nil, s.reviewsErr
	}
	reviews, ok := s.reviews[bookID]
	if !ok {
		return []models.ReviewWithUser{}, nil
	}
	return reviews, nil
}

func (s *fakeStore) LikeCountForBook(_ context.Context, bookID primitive.ObjectID) (int64, error) {
	if s.likesErr != nil {
		return 0, s.likesErr
	}
	return s.likes[bookID], nil
}

func (s *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.users[email], nil
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	s.users[user.Email] = user
	return id, nil
}

// fakeUploader records uploads and deletions; URLs and keys are derived
// from the original filename so tests can assert on them.
type fakeUploader struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
	objects   map[string]string // key -> body
}

func (u *fakeUploader) Upload(_ context.Context, folder, originalFilename string, body io.Reader, _ string) (service.UploadResult, error) {
	if u.uploadErr != nil {
		return service.UploadResult{}, u.uploadErr
	}
	io.Copy(io.Discard, body)
	key := folder + originalFilename
	u.uploaded = append(u.uploaded, key)
	return service.UploadResult{URL: "https://cdn.example.com/" + key, Key: key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	if u.deleteErr != nil {
		return u.deleteErr
	}
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetObject(_ context.Context, key string) (io.ReadCloser, string, error) {
	body, ok := u.objects[key]
	if !ok {
		return nil, "", errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(body)), contentTypePDF, nil
}

// newTestRouter mounts the handler on the same routes main registers.
func newTestRouter(h *BooksHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/add-books", h.AddBook)
	r.Get("/get-books/category/{categoryId}", h.GetBooksByCategory)
	r.Get("/get-book/{bookId}", h.GetBookByID)
	r.Patch("/like-book/{bookId}/toggle-like", h.ToggleLike)
	r.Get("/books/pdf/{bookId}", h.StreamPDF)
	r.Delete("/api/books/delete-by-category/{categoryId}", h.DeleteBooksByCategory)
	r.Put("/api/books/update-by-category/{categoryId}", h.UpdateBooksByCategory)
	return r
}
