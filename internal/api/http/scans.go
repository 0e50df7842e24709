package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/laxa-app/laxa/internal/auth/middleware"
	"github.com/laxa-app/laxa/internal/storage"
)

const maxScanBytes = 10 << 20 // 10 MiB per worksheet photo

// UploadScanHandler accepts a multipart worksheet photo for a submission.
// The stored key is returned so the client can attach it to an answer.
func UploadScanHandler(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		childID := authmw.SubjectFromContext(r.Context())
		if childID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		submissionID := chi.URLParam(r, "submissionID")

		r.Body = http.MaxBytesReader(w, r.Body, maxScanBytes)
		if err := r.ParseMultipartForm(maxScanBytes); err != nil {
			http.Error(w, "upload too large or malformed", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("scan")
		if err != nil {
			http.Error(w, "missing scan file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		key := storage.ScanKey(childID, submissionID, header.Filename)
		stored, err := blobs.Put(r.Context(), key, file)
		if err != nil {
			http.Error(w, "store scan: "+err.Error(), http.StatusInternalServerError)
			return
		}

		url, _ := blobs.URL(stored)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"key": stored, "url": url})
	}
}

// GetScanHandler streams a stored scan back, e.g. for parent review.
func GetScanHandler(blobs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		rc, err := blobs.Get(r.Context(), key)
		if err != nil {
			http.Error(w, "scan not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	}
}
