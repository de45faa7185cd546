package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// errTooLarge marks an upload over the configured size limit.
var errTooLarge = errors.New("file too large")

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	cfg, err := s.outlineConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	data, err := s.readUpload(file)
	if errors.Is(err, errTooLarge) {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if _, err := parser.ForContent(data, filename); err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return
	}

	out, err := s.orchestrator.Processor().Process(r.Context(), data, filename, cfg)
	if err != nil {
		var ee *parser.ExtractionError
		if errors.As(err, &ee) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("outline failed", "filename", filename, "error", err)
		jsonError(w, "outline failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := outline.Encode(w, out.Outline); err != nil {
		s.log.Error("encode outline", "error", err)
	}
}

func (s *Server) handleSubmitJobs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			jsonError(w, "request too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	cfg, err := s.outlineConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		results = append(results, s.submitFile(fh, cfg))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) submitFile(fh *multipart.FileHeader, cfg outline.Config) map[string]any {
	filename := sanitizeFilename(fh.Filename)
	fail := func(msg string) map[string]any {
		return map[string]any{"filename": filename, "error": msg}
	}

	f, err := fh.Open()
	if err != nil {
		return fail("failed to open file")
	}
	data, err := s.readUpload(f)
	f.Close()
	if err != nil {
		return fail("file too large or read error")
	}
	if _, err := parser.ForContent(data, filename); err != nil {
		return fail(fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)))
	}

	job := pipeline.NewJob(filename, data, cfg)
	if err := s.orchestrator.Submit(job); err != nil {
		return fail(err.Error())
	}
	return map[string]any{
		"filename": filename,
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/outline/jobs/%s", job.ID),
	}
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// outlineConfig applies the optional max_pages and levels form values to the
// service defaults.
func (s *Server) outlineConfig(r *http.Request) (outline.Config, error) {
	cfg := s.cfg.Outline()
	if v := r.FormValue("max_pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("max_pages must be an integer")
		}
		cfg.MaxPages = n
	}
	if v := r.FormValue("levels"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("levels must be an integer")
		}
		cfg.HeadingLevels = n
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s *Server) readUpload(f io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, errTooLarge
	}
	return data, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
