package api

import (
	"encoding/json/v2"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	apperrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/media/images"
)

// registerImageRoutes wires the image endpoints. These bypass huma:
// multipart uploads and binary streaming fit plain chi handlers better.
func (s *Server) registerImageRoutes() {
	s.router.Post("/api/v1/recipes/{id}/image", s.handleUploadRecipeImage)
	s.router.Get("/images/recipes/{filename}", s.handleServeImage)
}

func (s *Server) handleUploadRecipeImage(w http.ResponseWriter, r *http.Request) {
	user, err := s.authenticateHTTP(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, apperrors.Validation("invalid recipe ID"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		s.writeError(w, apperrors.Validation("invalid multipart form or upload too large"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, apperrors.ValidationWithDetails("validation failed",
			map[string]string{"image": "file field is required"}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, apperrors.Wrap(err, apperrors.CodeInternal, "read upload"))
		return
	}

	recipe, err := s.services.Recipes.SaveImage(r.Context(), user.ID, recipeID, data, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, mapRecipeImage(recipe))
}

func (s *Server) handleServeImage(w http.ResponseWriter, r *http.Request) {
	relPath := "recipes/" + chi.URLParam(r, "filename")

	data, err := s.images.Get(relPath)
	if err != nil {
		s.writeError(w, apperrors.NotFound("image not found"))
		return
	}

	w.Header().Set("Content-Type", images.ContentType(relPath))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeJSON encodes a response body for non-huma routes.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, body); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// writeError maps an error to a JSON error response for non-huma routes,
// mirroring the huma error shape.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		s.writeJSON(w, domainErr.HTTPStatus(), &APIError{
			Code:    string(domainErr.Code),
			Message: domainErr.Message,
			Details: domainErr.Details,
		})
		return
	}

	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		s.writeJSON(w, statusErr.GetStatus(), &APIError{
			Code:    statusToCode(statusErr.GetStatus()),
			Message: statusErr.Error(),
		})
		return
	}

	s.logger.Error("unhandled request error", "error", err)
	s.writeJSON(w, http.StatusInternalServerError, &APIError{
		Code:    string(apperrors.CodeInternal),
		Message: "internal server error",
	})
}
