package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	ordertypes "github.com/Apurer/go-gin-delivery-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrderInput struct {
	UserID  int64  `json:"userId"`
	ShopID  int64  `json:"shopId"`
	MenuID  int64  `json:"menuId"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// FingerprintPlaceOrder hashes the order request, excluding the idempotency key.
func FingerprintPlaceOrder(input ordertypes.PlaceOrderInput) (string, error) {
	payload, err := json.Marshal(normalizedPlaceOrderInput{
		UserID:  input.Requester.ID,
		ShopID:  input.ShopID,
		MenuID:  input.MenuID,
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
