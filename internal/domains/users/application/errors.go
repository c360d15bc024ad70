package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/users/domain"
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = sharederrors.New(sharederrors.KindInvalidArgument, "invalid user input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrWeakPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
