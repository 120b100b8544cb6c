package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addBookResponse struct {
	Message string `json:"message"`
	Book    struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		About    []string `json:"about"`
		Language string   `json:"language"`
		Images   struct {
			CoverImage  string   `json:"coverImage"`
			OtherImages []string `json:"otherImages"`
		} `json:"images"`
		PDF           []string `json:"pdf"`
		AuthorDetails struct {
			Name string `json:"name"`
		} `json:"authorDetails"`
		Like bool `json:"like"`
	} `json:"book"`
}

func buildMultipart(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for field, names := range files {
		for _, name := range names {
			part, err := mw.CreateFormFile(field, name)
			require.NoError(t, err)
			_, err = part.Write([]byte("file-content-" + name))
			require.NoError(t, err)
		}
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAddBookCoverOnly(t *testing.T) {
	db := newFakeStore()
	up := &fakeUploader{}
	router := newTestRouter(&BooksHandler{DB: db, Uploader: up})

	body, contentType := buildMultipart(t,
		map[string]string{
			"name":       "  The Alchemist  ",
			"about":      "A shepherd chases a dream.",
			"language":   "en",
			"category":   primitive.NewObjectID().Hex(),
			"authorName": " Paulo Coelho ",
		},
		map[string][]string{"coverImage": {"cover.jpg"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/add-books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp addBookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "The Alchemist", resp.Book.Name)
	assert.Equal(t, "Paulo Coelho", resp.Book.AuthorDetails.Name)
	assert.Equal(t, "https://cdn.example.com/books/images/cover.jpg", resp.Book.Images.CoverImage)
	assert.NotNil(t, resp.Book.Images.OtherImages)
	assert.Len(t, resp.Book.Images.OtherImages, 0)
	// otherImages must serialize as [], not null
	assert.Contains(t, rec.Body.String(), `"otherImages":[]`)
	assert.Equal(t, []string{"A shepherd chases a dream."}, resp.Book.About)
	assert.False(t, resp.Book.Like)

	require.Len(t, db.inserted, 1)
	assert.Equal(t, []string{"books/images/cover.jpg"}, db.inserted[0].ImageKeys)
}

func TestAddBookAllAssetKinds(t *testing.T) {
	db := newFakeStore()
	up := &fakeUploader{}
	router := newTestRouter(&BooksHandler{DB: db, Uploader: up})

	body, contentType := buildMultipart(t,
		map[string]string{
			"name":     "Dune",
			"about":    "Spice.",
			"language": "en",
			"category": primitive.NewObjectID().Hex(),
			"author":   "Frank Herbert",
		},
		map[string][]string{
			"coverImage":  {"cover.png"},
			"otherImages": {"back.png", "spine.png"},
			"pdf":         {"dune.pdf"},
		},
	)
	req := httptest.NewRequest(http.MethodPost, "/add-books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp addBookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Frank Herbert", resp.Book.AuthorDetails.Name)
	assert.Len(t, resp.Book.Images.OtherImages, 2)
	require.Len(t, resp.Book.PDF, 1)
	assert.Equal(t, "https://cdn.example.com/books/pdfs/dune.pdf", resp.Book.PDF[0])

	require.Len(t, db.inserted, 1)
	assert.Equal(t, []string{"books/pdfs/dune.pdf"}, db.inserted[0].PDFKeys)
	assert.Len(t, db.inserted[0].ImageKeys, 3)
}

func TestAddBookLegacyImagesRequirePDF(t *testing.T) {
	db := newFakeStore()
	router := newTestRouter(&BooksHandler{DB: db, Uploader: &fakeUploader{}})

	body, contentType := buildMultipart(t,
		map[string]string{
			"name":     "Old Client Book",
			"category": primitive.NewObjectID().Hex(),
		},
		map[string][]string{"images": {"a.jpg", "b.jpg"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/add-books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PDF file is required")
	assert.Empty(t, db.inserted)
}

func TestAddBookUploadFailureAborts(t *testing.T) {
	db := newFakeStore()
	up := &fakeUploader{uploadErr: errors.New("bucket unavailable")}
	router := newTestRouter(&BooksHandler{DB: db, Uploader: up})

	body, contentType := buildMultipart(t,
		map[string]string{
			"name":     "Doomed",
			"category": primitive.NewObjectID().Hex(),
		},
		map[string][]string{"coverImage": {"cover.jpg"}},
	)
	req := httptest.NewRequest(http.MethodPost, "/add-books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket unavailable")
	assert.Empty(t, db.inserted)
}

func TestAddBookInvalidCategory(t *testing.T) {
	db := newFakeStore()
	router := newTestRouter(&BooksHandler{DB: db, Uploader: &fakeUploader{}})

	body, contentType := buildMultipart(t,
		map[string]string{"name": "X", "category": "not-an-id"},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/add-books", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid category ID format")
}
