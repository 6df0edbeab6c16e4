package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PJEDeveloper/thinker/internal/app/chat"
	"github.com/PJEDeveloper/thinker/internal/domain"
	"github.com/PJEDeveloper/thinker/internal/observability"
)

type Server struct {
	svc            *chat.Service
	maxUploadBytes int64
}

func NewServer(svc *chat.Service, maxUploadBytes int64) http.Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20
	}
	s := &Server{svc: svc, maxUploadBytes: maxUploadBytes}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /stream", s.handleStream)
	mux.HandleFunc("POST /upload_document", s.handleUploadDocument)
	mux.HandleFunc("GET /get_document_page", s.handleGetDocumentPage)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("POST /clear_text", s.handleClearText)
	mux.HandleFunc("POST /clear_audio_video", s.handleClearAudioVideo)
	mux.HandleFunc("POST /clear_image", s.handleClearImage)
	mux.HandleFunc("POST /clear_document", s.handleClearDocument)
	mux.HandleFunc("GET /health", s.handleHealth)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type streamResponse struct {
	Response      string   `json:"response"`
	SearchResults []string `json:"search_results"`
}

type documentResponse struct {
	Filename    string `json:"filename"`
	Page        string `json:"page"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	// ParseMultipartForm's argument is only the in-memory threshold; the
	// actual size limit needs MaxBytesReader on the body.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		badRequest(w, "invalid or oversized multipart form")
		return
	}

	in := chat.StreamInput{
		Text:                r.FormValue("text"),
		SearchEnabled:       parseFlag(r.FormValue("google_search")),
		DocumentInteraction: parseFlag(r.FormValue("document_interaction")),
		DocumentContext:     r.FormValue("document_context"),
	}

	audio, audioName, err := readFormFile(r, "audio")
	if err != nil {
		badRequest(w, "failed to read audio upload")
		return
	}
	in.Audio = audio
	in.AudioName = audioName

	image, imageName, err := readFormFile(r, "image")
	if err != nil {
		badRequest(w, "failed to read image upload")
		return
	}
	in.Image = image
	in.ImageMIME = imageMIMEFromName(imageName)

	out, err := s.svc.Stream(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, streamResponse{
		Response:      out.Response,
		SearchResults: out.SearchResults,
	})
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		badRequest(w, "invalid or oversized multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		badRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		badRequest(w, "no valid file uploaded")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "failed to read upload")
		return
	}

	page, err := s.svc.UploadDocument(r.Context(), header.Filename, data)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		Filename:    page.Filename,
		Page:        page.Page,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	})
}

func (s *Server) handleGetDocumentPage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		badRequest(w, "invalid page number")
		return
	}

	page, err := s.svc.GetDocumentPage(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		Filename:    page.Filename,
		Page:        page.Page,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.svc.Reset(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Conversation and context cleared successfully."})
}

func (s *Server) handleClearText(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearConversation(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Text input cleared."})
}

func (s *Server) handleClearAudioVideo(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearTranscript(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Audio/Video cleared."})
}

func (s *Server) handleClearImage(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearCaption(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Image cleared."})
}

func (s *Server) handleClearDocument(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearDocument(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Document context cleared."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// parseFlag converts the form's "true"/"false" strings to a typed bool once
// at ingress.
func parseFlag(v string) bool {
	return v == "true" || v == "1"
}

// readFormFile reads an optional multipart file. A missing field is not an
// error; it returns (nil, "", nil).
func readFormFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func imageMIMEFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

// writeError maps domain error kinds onto the response contract: 400 for
// input problems, 502 for generation failures, 500 otherwise.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoContent),
		errors.Is(err, domain.ErrUnsupportedMedia),
		errors.Is(err, domain.ErrExtraction),
		errors.Is(err, domain.ErrOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrGeneration):
		status = http.StatusBadGateway
	}

	observability.LoggerFromContext(r.Context()).Error("request failed",
		"path", r.URL.Path, "status", status, "error", err)

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
