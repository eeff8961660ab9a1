package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mesh-intelligence/upvote/internal/metrics"
	"github.com/mesh-intelligence/upvote/pkg/types"
)

// VoteRequest is the payload for casting or retracting a vote. UserID
// is optional on cast (the server generates a token) and required on
// retract.
type VoteRequest struct {
	UserID string `json:"user_id"`
}

// CastVoteResponse is the payload for POST /api/features/:id/vote.
type CastVoteResponse struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	VoteCount int    `json:"vote_count"`
}

func (s *Server) handleCastVote(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid feature id")
	}

	// The body is optional: an anonymous cast gets a generated identity.
	// Bind unconditionally so a user_id arrives even when the request
	// carries no Content-Length (chunked encoding); only an absent body
	// falls through to the anonymous case.
	var req VoteRequest
	if err := c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return errorJSON(c, http.StatusBadRequest, "invalid JSON")
	}

	votes, err := s.store.Votes()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	userID, count, err := votes.Cast(id, req.UserID)
	switch {
	case errors.Is(err, types.ErrFeatureNotFound):
		s.voteMetrics.VotesCast.WithLabelValues(metrics.ResultFeatureNotFound).Inc()
		return errorJSON(c, http.StatusNotFound, "Feature not found")
	case errors.Is(err, types.ErrDuplicateVote):
		s.voteMetrics.VotesCast.WithLabelValues(metrics.ResultDuplicate).Inc()
		return errorJSON(c, http.StatusConflict, "User has already voted for this feature")
	case err != nil:
		s.voteMetrics.VotesCast.WithLabelValues(metrics.ResultError).Inc()
		slog.Error("failed to cast vote", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to cast vote")
	}

	s.voteMetrics.VotesCast.WithLabelValues(metrics.ResultAccepted).Inc()
	slog.Info("vote cast", "feature_id", id, "vote_count", count)

	return c.JSON(http.StatusCreated, CastVoteResponse{
		Message:   "Vote added successfully",
		UserID:    userID,
		VoteCount: count,
	})
}

func (s *Server) handleRetractVote(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid feature id")
	}

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid JSON")
	}
	if req.UserID == "" {
		return errorJSON(c, http.StatusBadRequest, "user_id is required")
	}

	votes, err := s.store.Votes()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	count, err := votes.Retract(id, req.UserID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "Vote not found")
		}
		slog.Error("failed to retract vote", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to retract vote")
	}

	s.voteMetrics.VotesRetracted.Inc()
	slog.Info("vote retracted", "feature_id", id, "vote_count", count)

	return c.JSON(http.StatusOK, map[string]any{
		"message":    "Vote removed successfully",
		"vote_count": count,
	})
}

func (s *Server) handleFeatureVotes(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid feature id")
	}

	votes, err := s.store.Votes()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	recorded, err := votes.ForFeature(id)
	if err != nil {
		if errors.Is(err, types.ErrFeatureNotFound) {
			return errorJSON(c, http.StatusNotFound, "Feature not found")
		}
		slog.Error("failed to list feature votes", "error", err, "feature_id", id)
		return errorJSON(c, http.StatusInternalServerError, "failed to list votes")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"feature_id": id,
		"votes":      recorded,
		"vote_count": len(recorded),
	})
}

func (s *Server) handleUserVotes(c echo.Context) error {
	userID := c.Param("user_id")

	votes, err := s.store.Votes()
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "store unavailable")
	}

	featureIDs, err := votes.ForUser(userID)
	if err != nil {
		slog.Error("failed to list user votes", "error", err, "user_id", userID)
		return errorJSON(c, http.StatusInternalServerError, "failed to list votes")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user_id":        userID,
		"voted_features": featureIDs,
		"vote_count":     len(featureIDs),
	})
}
