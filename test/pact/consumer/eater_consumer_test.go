//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-delivery-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type menuPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type shopPayload struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	OpenTime       string        `json:"openTime"`
	CloseTime      string        `json:"closeTime"`
	MinOrderAmount string        `json:"minOrderAmount"`
	Menus          []menuPayload `json:"menus"`
}

type orderPayload struct {
	ID        int64  `json:"id"`
	ShopID    int64  `json:"shopId"`
	MenuID    int64  `json:"menuId"`
	MenuPrice string `json:"menuPrice"`
	Status    string `json:"status"`
}

type reviewPayload struct {
	ID      int64  `json:"id"`
	OrderID int64  `json:"orderId"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Kind   string `json:"kind"`
}

type apiError struct {
	status int
	kind   string
	detail string
}

func (e apiError) Error() string {
	msg := e.kind
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func TestEaterAppContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	problemContentType := matchers.Regex("application/problem+json", "application\\/problem\\+json(?:;\\s?charset=utf-8)?")
	bearer := matchers.S("Bearer " + pacttest.ConsumerToken)
	problem := func(status int, kind string) matchers.Map {
		return matchers.Map{
			"type":   matchers.Like("/problems/example"),
			"title":  matchers.Like("Problem"),
			"status": matchers.Like(status),
			"detail": matchers.Like("detail"),
			"kind":   matchers.S(kind),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateShopOpen).
		UponReceiving("a request for a shop and its menus").
		WithRequest("GET", fmt.Sprintf("/v1/shops/%d", pacttest.ExistingShopID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":             matchers.Like(pacttest.ExistingShopID),
				"name":           matchers.Like("Seoul Kitchen"),
				"openTime":       matchers.Term("09:00:00", `^\d{2}:\d{2}(:\d{2})?$`),
				"closeTime":      matchers.Term("21:00:00", `^\d{2}:\d{2}(:\d{2})?$`),
				"minOrderAmount": matchers.Like(pacttest.ExampleMinimum),
				"menus": matchers.EachLike(matchers.Map{
					"id":    matchers.Like(pacttest.ExistingMenuID),
					"name":  matchers.Like(pacttest.ExampleMenu),
					"price": matchers.Like(pacttest.ExamplePrice),
				}, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateShopOpen).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearer)
			b.JSONBody(pacttest.ExamplePlaceOrderPayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":        matchers.Like(pacttest.ExistingOrderID),
				"shopId":    matchers.Like(pacttest.ExistingShopID),
				"menuId":    matchers.Like(pacttest.ExistingMenuID),
				"menuPrice": matchers.Like(pacttest.ExamplePrice),
				"status":    matchers.S("PENDING"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/v1/orders/%d", pacttest.MissingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(problem(http.StatusNotFound, "not-found"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderPending).
		UponReceiving("a review for an order that is not completed").
		WithRequest("POST", fmt.Sprintf("/v1/orders/%d/reviews", pacttest.ExistingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearer)
			b.JSONBody(map[string]any{"rating": 5, "content": "great"})
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(problem(http.StatusBadRequest, "not-eligible"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderCompleted).
		UponReceiving("a review for a completed order").
		WithRequest("POST", fmt.Sprintf("/v1/orders/%d/reviews", pacttest.ExistingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearer)
			b.JSONBody(map[string]any{"rating": 5, "content": "great"})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":      matchers.Like(int64(1)),
				"orderId": matchers.Like(pacttest.ExistingOrderID),
				"rating":  matchers.Like(5),
				"content": matchers.Like("great"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newEaterClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var shop shopPayload
		if err := client.call(ctx, http.MethodGet, fmt.Sprintf("/v1/shops/%d", pacttest.ExistingShopID), nil, &shop); err != nil {
			return fmt.Errorf("get shop: %w", err)
		}
		if len(shop.Menus) == 0 {
			return fmt.Errorf("expected shop %d to list menus", shop.ID)
		}

		var order orderPayload
		if err := client.call(ctx, http.MethodPost, "/v1/orders", pacttest.ExamplePlaceOrderPayload(), &order); err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order.ID == 0 || order.Status != "PENDING" {
			return fmt.Errorf("unexpected placed order %+v", order)
		}

		err := client.call(ctx, http.MethodGet, fmt.Sprintf("/v1/orders/%d", pacttest.MissingOrderID), nil, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for order %d, got %v", pacttest.MissingOrderID, err)
		}

		reviewPath := fmt.Sprintf("/v1/orders/%d/reviews", pacttest.ExistingOrderID)
		body := map[string]any{"rating": 5, "content": "great"}
		err = client.call(ctx, http.MethodPost, reviewPath, body, nil)
		if apiErr, ok := err.(apiError); !ok || apiErr.kind != "not-eligible" {
			return fmt.Errorf("expected not-eligible review rejection, got %v", err)
		}

		var review reviewPayload
		if err := client.call(ctx, http.MethodPost, reviewPath, body, &review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		if review.OrderID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected review for order %d, got %+v", pacttest.ExistingOrderID, review)
		}
		return nil
	})
	require.NoError(t, err)
}

type eaterClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newEaterClient(config pactconsumer.MockServerConfig) *eaterClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &eaterClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		token:      pacttest.ConsumerToken,
		httpClient: client,
	}
}

func (c *eaterClient) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" && !strings.HasPrefix(path, "/v1/shops/") {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, kind: problem.Kind, detail: problem.Detail}
}
