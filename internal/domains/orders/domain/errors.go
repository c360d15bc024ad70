package domain

import (
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrForbiddenRole        = sharederrors.New(sharederrors.KindForbiddenRole, "shop owners cannot place orders")
	ErrShopClosed           = sharederrors.New(sharederrors.KindShopClosed, "shop is not open right now")
	ErrInvalidConfiguration = sharederrors.New(sharederrors.KindInvalidConfiguration, "menu price or minimum order amount is not configured")
	ErrMinimumNotMet        = sharederrors.New(sharederrors.KindMinimumNotMet, "menu price is below the minimum order amount")
	ErrNotShopOwner         = sharederrors.New(sharederrors.KindForbidden, "only the shop owner can manage this order")
	ErrNotParticipant       = sharederrors.New(sharederrors.KindForbidden, "order belongs to another user")

	ErrUnknownStatus   = sharederrors.New(sharederrors.KindInvalidArgument, "unknown order status")
	ErrAddressRequired = sharederrors.New(sharederrors.KindInvalidArgument, "delivery address is required")
	ErrPhoneRequired   = sharederrors.New(sharederrors.KindInvalidArgument, "contact phone is required")

	ErrInvalidTransition = sharederrors.New(sharederrors.KindInvalidTransition, "invalid order status transition")
	ErrAlreadyCompleted  = sharederrors.New(sharederrors.KindAlreadyCompleted, "already completed, cannot change")
	ErrAlreadyCanceled   = sharederrors.New(sharederrors.KindAlreadyCanceled, "canceled, cannot change")
)
