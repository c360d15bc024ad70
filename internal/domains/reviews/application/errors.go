package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = sharederrors.New(sharederrors.KindInvalidArgument, "invalid review input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidRating) ||
		errors.Is(err, domain.ErrInvalidRange) ||
		errors.Is(err, domain.ErrContentRequired) ||
		errors.Is(err, domain.ErrContentTooLong) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
