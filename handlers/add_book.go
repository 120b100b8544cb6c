package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"bookcatalog/models"
	"bookcatalog/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	contentTypePDF   = "application/pdf"
	contentTypeImage = "image/jpeg"
)

// AddBook handles POST /add-books: uploads the multipart assets to the
// media host one by one, then persists the book record with the returned
// URLs. Assets uploaded before a failure are not rolled back.
func (h *BooksHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	if h.Uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Upload not configured", nil)
		return
	}

	form := r.MultipartForm
	var coverFile *multipart.FileHeader
	if files := form.File["coverImage"]; len(files) > 0 {
		coverFile = files[0]
	}
	galleryFiles := form.File["otherImages"]
	pdfFiles := form.File["pdf"]

	// Legacy clients send the gallery as "images" and must include a PDF.
	if legacy := form.File["images"]; len(legacy) > 0 {
		galleryFiles = append(galleryFiles, legacy...)
		if len(pdfFiles) == 0 {
			writeError(w, http.StatusBadRequest, "PDF file is required", nil)
			return
		}
	}

	category, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("category")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID format", nil)
		return
	}

	coverImageURL := ""
	otherImages := []string{}
	pdfURLs := []string{}
	var imageKeys, pdfKeys []string

	if coverFile != nil {
		res, err := h.uploadPart(r, service.ImageFolder, coverFile, contentTypeImage)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to add book", err)
			return
		}
		coverImageURL = res.URL
		imageKeys = append(imageKeys, res.Key)
	}
	for _, file := range galleryFiles {
		res, err := h.uploadPart(r, service.ImageFolder, file, contentTypeImage)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to add book", err)
			return
		}
		otherImages = append(otherImages, res.URL)
		imageKeys = append(imageKeys, res.Key)
	}
	for _, file := range pdfFiles {
		res, err := h.uploadPart(r, service.PDFFolder, file, contentTypePDF)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to add book", err)
			return
		}
		pdfURLs = append(pdfURLs, res.URL)
		pdfKeys = append(pdfKeys, res.Key)
	}

	about := form.Value["about"]
	if about == nil {
		about = []string{}
	}

	book := &models.Book{
		Name:     strings.TrimSpace(r.FormValue("name")),
		About:    about,
		Language: strings.TrimSpace(r.FormValue("language")),
		Category: category,
		Images: models.ImageSet{
			CoverImage:  coverImageURL,
			OtherImages: otherImages,
		},
		PDF: pdfURLs,
		AuthorDetails: models.AuthorDetails{
			Name:  strings.TrimSpace(authorName(r)),
			Photo: strings.TrimSpace(r.FormValue("authorPhoto")),
			Info:  strings.TrimSpace(r.FormValue("authorInfo")),
		},
		ImageKeys: imageKeys,
		PDFKeys:   pdfKeys,
		CreatedAt: time.Now(),
	}

	id, err := h.DB.InsertBook(r.Context(), book)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add book", err)
		return
	}
	book.ID = id

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Book added successfully",
		"book":    book,
	})
}

// authorName accepts both the current "authorName" field and the legacy
// "author" field.
func authorName(r *http.Request) string {
	if v := r.FormValue("authorName"); v != "" {
		return v
	}
	return r.FormValue("author")
}

func (h *BooksHandler) uploadPart(r *http.Request, folder string, file *multipart.FileHeader, fallbackType string) (service.UploadResult, error) {
	f, err := file.Open()
	if err != nil {
		return service.UploadResult{}, err
	}
	defer f.Close()
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = fallbackType
	}
	return h.Uploader.Upload(r.Context(), folder, file.Filename, f, contentType)
}
