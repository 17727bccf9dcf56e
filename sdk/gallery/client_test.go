package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	gallery "github.com/bitmark-inc/image-gallery"
)

// stubAPI fakes the gallery API for client tests. Upload responses echo the
// submitted file; deletes succeed for known ids only.
type stubAPI struct {
	t *testing.T

	requests   int64
	nextID     int64
	knownIDs   map[int64]bool
	failUpload func(filename string) bool
	sizeAsText bool
}

func newStubAPI(t *testing.T) *stubAPI {
	return &stubAPI{
		t:        t,
		knownIDs: map[int64]bool{},
	}
}

func (a *stubAPI) server() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/images", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&a.requests, 1)

		fmt.Fprintf(w, `[
			{"id":2,"url":"https://blobs.test/two.png","name":"two.png","size":%s,"username":null,"email":null,"uploadedAt":"2024-04-01T12:01:00Z"},
			{"id":1,"url":"https://blobs.test/one.png","name":"one.png","size":128,"username":"alice","email":null,"uploadedAt":"2024-04-01T12:00:00Z"}
		]`, a.wrapSize("64"))
	})

	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&a.requests, 1)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"No file uploaded"}`)
			return
		}
		defer file.Close()

		if a.failUpload != nil && a.failUpload(header.Filename) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"Upload failed","details":"bucket offline"}`)
			return
		}

		content, err := io.ReadAll(file)
		assert.NoError(a.t, err)

		a.nextID++
		a.knownIDs[a.nextID] = true

		response := map[string]interface{}{
			"id":         a.nextID,
			"url":        "https://blobs.test/" + header.Filename,
			"name":       header.Filename,
			"size":       len(content),
			"username":   nil,
			"email":      nil,
			"uploadedAt": "2024-04-01T12:00:00Z",
		}
		if username := r.FormValue("username"); username != "" {
			response["username"] = username
		}
		if a.sizeAsText {
			response["size"] = fmt.Sprintf("%d", len(content))
		}

		assert.NoError(a.t, json.NewEncoder(w).Encode(response))
	})

	mux.HandleFunc("DELETE /api/images/{id}", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&a.requests, 1)

		var id int64
		fmt.Sscanf(r.PathValue("id"), "%d", &id)

		if !a.knownIDs[id] {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"Image not found"}`)
			return
		}

		delete(a.knownIDs, id)
		fmt.Fprint(w, `{"message":"Image deleted successfully"}`)
	})

	return httptest.NewServer(mux)
}

func (a *stubAPI) wrapSize(size string) string {
	if a.sizeAsText {
		return fmt.Sprintf("%q", size)
	}
	return size
}

func TestListImages(t *testing.T) {
	api := newStubAPI(t)
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	records, err := c.ListImages(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int64(2), records[0].ID)
	assert.Equal(t, int64(64), records[0].Size)
	assert.Equal(t, "alice", *records[1].Username)
}

func TestListImagesCoercesTextSize(t *testing.T) {
	api := newStubAPI(t)
	api.sizeAsText = true
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	records, err := c.ListImages(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(64), records[0].Size)
}

func TestUploadImage(t *testing.T) {
	api := newStubAPI(t)
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	record, err := c.UploadImage(context.Background(), StagedFile{
		Name:        "photo.png",
		ContentType: "image/png",
		Content:     make([]byte, 48),
	}, "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "photo.png", record.Name)
	assert.Equal(t, "https://blobs.test/photo.png", record.URL)
	assert.Equal(t, int64(48), record.Size)
	assert.Equal(t, "alice", *record.Username)
}

func TestUploadImageCoercesTextSize(t *testing.T) {
	api := newStubAPI(t)
	api.sizeAsText = true
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	record, err := c.UploadImage(context.Background(), StagedFile{
		Name:        "photo.png",
		ContentType: "image/png",
		Content:     make([]byte, 48),
	}, "", "")

	assert.NoError(t, err)
	assert.Equal(t, int64(48), record.Size)
}

func TestUploadImageFailure(t *testing.T) {
	api := newStubAPI(t)
	api.failUpload = func(string) bool { return true }
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	_, err := c.UploadImage(context.Background(), StagedFile{
		Name:        "photo.png",
		ContentType: "image/png",
		Content:     make([]byte, 48),
	}, "", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Upload failed")
	assert.Contains(t, err.Error(), "bucket offline")
}

func TestDeleteImage(t *testing.T) {
	api := newStubAPI(t)
	srv := api.server()
	defer srv.Close()

	c := New(srv.URL, nil)

	record, err := c.UploadImage(context.Background(), StagedFile{
		Name:        "photo.png",
		ContentType: "image/png",
		Content:     make([]byte, 48),
	}, "", "")
	assert.NoError(t, err)

	assert.NoError(t, c.DeleteImage(context.Background(), record.ID))

	err = c.DeleteImage(context.Background(), record.ID)
	assert.ErrorIs(t, err, gallery.ErrImageNotFound)
}
