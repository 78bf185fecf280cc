package handlers

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asg0d/billboards-live/internal/config"
	"github.com/asg0d/billboards-live/internal/services"
	"github.com/asg0d/billboards-live/internal/types"
	"github.com/asg0d/billboards-live/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// parseID parses a numeric path parameter, returning a not-found error when
// it is not a valid positive integer.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, types.NewNotFoundError("Invalid id: " + raw)
	}
	return uint(id), nil
}

// handleServiceError renders a service-layer error as the standard envelope
func handleServiceError(c *fiber.Ctx, err error, errorType string) error {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case types.KindValidation:
			return utils.ValidationErrorResponse(c, apiErr.Message, apiErr.Violations)
		case types.KindNotFound:
			return utils.NotFoundResponse(c, apiErr.Message)
		default:
			return utils.ErrorResponse(c, apiErr.Message, apiErr.Code, errorType)
		}
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// removeMediaAssets deletes stored media files whose database rows are
// already gone. Failures are logged; the rows are the source of truth.
func removeMediaAssets(cfg *config.Config, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		asset := filepath.Join(cfg.MediaRoot, filepath.FromSlash(p))
		if err := os.Remove(asset); err != nil && !os.IsNotExist(err) {
			log.Printf("image asset removal failed: %v", err)
		}
	}
}

// mediaResolver builds the per-request resolver for image URLs. A configured
// public base URL wins; otherwise the base is derived from the request.
func mediaResolver(c *fiber.Ctx, cfg *config.Config) services.MediaResolver {
	base := cfg.PublicBaseURL
	if base == "" {
		base = c.Protocol() + "://" + c.Hostname()
	}
	return services.MediaURLResolver(strings.TrimRight(base, "/") + cfg.MediaURL)
}
