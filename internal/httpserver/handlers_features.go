package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/upvote/pkg/types"
)

// CreateFeatureRequest is the payload for POST /api/features.
type CreateFeatureRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListFeaturesResponse is the payload for GET /api/features.
type ListFeaturesResponse struct {
	Features      []types.FeatureWithCount `json:"features"`
	TotalCount    int                      `json:"total_count"`
	ReturnedCount int                      `json:"returned_count"`
}

// isValidationError reports whether err is one of the feature field
// validation sentinels.
func isValidationError(err error) bool {
	return errors.Is(err, types.ErrTitleEmpty) ||
		errors.Is(err, types.ErrTitleTooLong) ||
		errors.Is(err, types.ErrDescriptionTooLong)
}

func (s *Server) handleCreateFeature(c echo.Context) error {
	var req CreateFeatureRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid JSON")
	}

	features, err := s.store.Features()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	f := types.Feature{Title: req.Title, Description: req.Description}
	if _, err := features.Save(&f); err != nil {
		if isValidationError(err) {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		slog.Error("failed to create feature", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to create feature")
	}

	s.voteMetrics.FeaturesCreated.Inc()
	slog.Info("feature created", "feature_id", f.ID, "title", f.Title)

	return c.JSON(http.StatusCreated, types.FeatureWithCount{Feature: f, VoteCount: 0})
}

func (s *Server) handleListFeatures(c echo.Context) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "limit must be an integer")
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "offset must be an integer")
	}

	features, err := s.store.Features()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	page, total, err := features.ListWithVoteCounts(limit, offset)
	if err != nil {
		slog.Error("failed to list features", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "failed to list features")
	}

	return c.JSON(http.StatusOK, ListFeaturesResponse{
		Features:      page,
		TotalCount:    total,
		ReturnedCount: len(page),
	})
}

func (s *Server) handleGetFeature(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid feature id")
	}

	features, err := s.store.Features()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}
	votes, err := s.store.Votes()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	f, err := features.Get(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Feature not found")
		}
		slog.Error("failed to get feature", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to get feature")
	}

	count, err := votes.Count(id)
	if err != nil {
		slog.Error("failed to count votes", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to get feature")
	}

	return c.JSON(http.StatusOK, types.FeatureWithCount{Feature: *f, VoteCount: count})
}

func (s *Server) handleDeleteFeature(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid feature id")
	}

	features, err := s.store.Features()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	if err := features.Delete(id); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Feature not found")
		}
		slog.Error("failed to delete feature", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to delete feature")
	}

	s.voteMetrics.FeaturesDeleted.Inc()
	slog.Info("feature deleted", "feature_id", id)

	return c.JSON(http.StatusOK, map[string]string{"message": "Feature deleted successfully"})
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// queryInt parses an optional integer query parameter.
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
