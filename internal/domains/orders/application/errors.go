package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = sharederrors.New(sharederrors.KindInvalidArgument, "invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, domain.ErrAddressRequired) ||
		errors.Is(err, domain.ErrPhoneRequired) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
