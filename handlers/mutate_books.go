package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToggleLike handles PATCH /like-book/{bookId}/toggle-like. The flip
// happens store-side in one operation, so toggling twice always restores
// the original value.
func (h *BooksHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "bookId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book ID format", nil)
		return
	}
	book, err := h.DB.ToggleBookLike(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to toggle like", err)
		return
	}
	if book == nil {
		writeError(w, http.StatusNotFound, "Book not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Book like toggled",
		"like":    book.Like,
	})
}

// DeleteBooksByCategory handles DELETE /api/books/delete-by-category/{categoryId}.
// Remote assets are removed first; the first asset failure aborts the whole
// operation, leaving the records in place. Reviews, likes and ratings that
// reference the deleted books are not cascaded.
func (h *BooksHandler) DeleteBooksByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID format", nil)
		return
	}
	books, err := h.DB.BooksByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete books", err)
		return
	}
	if len(books) == 0 {
		writeError(w, http.StatusNotFound, "No books found in this category", nil)
		return
	}

	if h.Uploader != nil {
		for _, book := range books {
			for _, key := range append(book.ImageKeys, book.PDFKeys...) {
				if err := h.Uploader.Delete(r.Context(), key); err != nil {
					writeError(w, http.StatusInternalServerError, "Failed to delete books", err)
					return
				}
			}
		}
	}

	deleted, err := h.DB.DeleteBooksByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete books", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Books deleted successfully",
		"deletedCount": deleted,
	})
}

// updatableFields maps caller-facing field names to their document paths.
// Anything not listed here is dropped from bulk updates.
var updatableFields = map[string]string{
	"name":        "name",
	"language":    "language",
	"about":       "about",
	"authorName":  "authorDetails.name",
	"authorPhoto": "authorDetails.photo",
	"authorInfo":  "authorDetails.info",
}

// allowlistUpdate keeps only the updatable fields from a caller-supplied
// update object, normalizing a scalar "about" to a sequence.
func allowlistUpdate(fields map[string]interface{}) bson.M {
	update := bson.M{}
	for name, value := range fields {
		target, ok := updatableFields[name]
		if !ok {
			continue
		}
		if name == "about" {
			if s, isString := value.(string); isString {
				value = []interface{}{s}
			}
		}
		update[target] = value
	}
	return update
}

// UpdateBooksByCategory handles PUT /api/books/update-by-category/{categoryId}:
// applies an allowlisted field update to every book in the category.
func (h *BooksHandler) UpdateBooksByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID format", nil)
		return
	}
	category, err := h.DB.CategoryByID(r.Context(), categoryID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update books", err)
		return
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	update := allowlistUpdate(fields)
	if len(update) == 0 {
		writeError(w, http.StatusBadRequest, "No updatable fields provided", nil)
		return
	}

	modified, err := h.DB.UpdateBooksByCategory(r.Context(), categoryID, update)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update books", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Books updated successfully",
		"modifiedCount": modified,
	})
}
