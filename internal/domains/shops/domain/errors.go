package domain

import (
	sharederrors "github.com/Apurer/go-gin-delivery-api/internal/shared/errors"
)

var (
	ErrOwnerRoleRequired = sharederrors.New(sharederrors.KindForbiddenRole, "only owners can open a shop")
	ErrNotShopOwner      = sharederrors.New(sharederrors.KindForbidden, "only the shop owner can change this shop")
	ErrShopLimitReached  = sharederrors.New(sharederrors.KindLimitExceeded, "an owner may run at most 3 shops")
	ErrShopAlreadyClosed = sharederrors.New(sharederrors.KindConflict, "shop is already closed")

	ErrNameRequired       = sharederrors.New(sharederrors.KindInvalidArgument, "shop name is required")
	ErrInvalidMinimum     = sharederrors.New(sharederrors.KindInvalidArgument, "minimum order amount must be greater than zero")
	ErrInvalidHours       = sharederrors.New(sharederrors.KindInvalidArgument, "open and close time must differ")
	ErrMenuNameRequired   = sharederrors.New(sharederrors.KindInvalidArgument, "menu name is required")
	ErrInvalidPrice       = sharederrors.New(sharederrors.KindInvalidArgument, "menu price must not be negative")
	ErrMenuAlreadyDeleted = sharederrors.New(sharederrors.KindConflict, "menu is already deleted")
)
