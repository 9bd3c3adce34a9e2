package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "mywallet/internal/errors"
	"mywallet/internal/middleware"
	"mywallet/internal/models"
)

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseUintQuery parses an optional uint query parameter. A missing or empty
// parameter yields nil.
func parseUintQuery(c *gin.Context, name string) (*uint, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, apperrors.Invalid(name, "must be a positive integer")
	}
	u := uint(id)
	return &u, nil
}

// parseTypeQuery parses an optional ?type=expense|revenue.
func parseTypeQuery(c *gin.Context) (*models.EntryType, error) {
	v := c.Query("type")
	if v == "" {
		return nil, nil
	}
	t := models.EntryType(v)
	if !t.Valid() {
		return nil, apperrors.Invalid("type", "must be expense or revenue")
	}
	return &t, nil
}

// bindError turns a binding failure into an INVALID_INPUT naming the field.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
