package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/shops/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
	"github.com/Apurer/go-gin-delivery-api/internal/shared/timeofday"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = sharederrors.New(sharederrors.KindInvalidArgument, "invalid shop input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, timeofday.ErrInvalid) ||
		errors.Is(err, domain.ErrNameRequired) ||
		errors.Is(err, domain.ErrInvalidMinimum) ||
		errors.Is(err, domain.ErrInvalidHours) ||
		errors.Is(err, domain.ErrMenuNameRequired) ||
		errors.Is(err, domain.ErrInvalidPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
