package handlers

import (
	"io"
	"math"
	"net/http"
	"path"

	"bookcatalog/middleware"
	"bookcatalog/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrichedBook is a book augmented with its reviews, like count and
// average rating for category listings.
type EnrichedBook struct {
	models.Book
	Reviews       []models.ReviewWithUser `json:"reviews"`
	LikesCount    int64                   `json:"likesCount"`
	AverageRating *float64                `json:"averageRating"`
}

// GetBooksByCategory handles GET /get-books/category/{categoryId}. Each
// book is enriched independently; the first failed lookup fails the whole
// request.
func (h *BooksHandler) GetBooksByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID format", nil)
		return
	}
	books, err := h.DB.BooksByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch books", err)
		return
	}

	enriched := make([]EnrichedBook, 0, len(books))
	for _, book := range books {
		reviews, err := h.DB.ReviewsForBook(r.Context(), book.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch books", err)
			return
		}
		likesCount, err := h.DB.LikeCountForBook(r.Context(), book.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch books", err)
			return
		}
		enriched = append(enriched, EnrichedBook{
			Book:          book,
			Reviews:       reviews,
			LikesCount:    likesCount,
			AverageRating: averageRating(reviews),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"books": enriched})
}

// averageRating is the mean review rating rounded to one decimal, or nil
// when there are no reviews.
func averageRating(reviews []models.ReviewWithUser) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := 0
	for _, rev := range reviews {
		sum += rev.Rating
	}
	avg := math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return &avg
}

type bookWithCategory struct {
	models.Book
	Category *models.Category `json:"category"`
	PDFUrl   string           `json:"pdfUrl,omitempty"`
}

// GetBookByID handles GET /get-book/{bookId}, resolving the category
// reference to the full record. Subscribed callers get a constructed PDF
// download URL; everyone else has the pdf field redacted.
func (h *BooksHandler) GetBookByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID format", nil)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch book", err)
		return
	}
	if book == nil {
		writeError(w, http.StatusNotFound, "Book not found", nil)
		return
	}
	category, err := h.DB.CategoryByID(r.Context(), book.Category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch book", err)
		return
	}

	resp := bookWithCategory{Book: *book, Category: category}
	if middleware.SubscribedFromContext(r.Context()) {
		resp.PDFUrl = requestScheme(r) + "://" + r.Host + "/books/pdf/" + book.ID.Hex()
	} else {
		resp.PDF = nil
	}
	writeJSON(w, http.StatusOK, resp)
}

// StreamPDF handles the legacy GET /books/pdf/{bookId}: fetches the
// book's first PDF asset from the media host and streams it inline.
func (h *BooksHandler) StreamPDF(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID format", nil)
		return
	}
	book, err := h.DB.BookByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch PDF", err)
		return
	}
	if book == nil || len(book.PDFKeys) == 0 {
		writeError(w, http.StatusNotFound, "PDF not found", nil)
		return
	}
	if h.Uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Download not configured", nil)
		return
	}
	body, contentType, err := h.Uploader.GetObject(r.Context(), book.PDFKeys[0])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch PDF", err)
		return
	}
	defer body.Close()
	if contentType == "" {
		contentType = contentTypePDF
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(book.PDFKeys[0])+`"`)
	io.Copy(w, body)
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
