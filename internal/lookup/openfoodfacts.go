// Package lookup fetches product metadata for scanned barcodes.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erazemk/pantryscan/internal/model"
)

// DefaultBaseURL is the Open Food Facts API host.
const DefaultBaseURL = "https://world.openfoodfacts.net"

// DefaultTimeout bounds a single lookup request.
const DefaultTimeout = 10 * time.Second

const productFields = "product_name,quantity,image_front_url,image_small_url,url"

var (
	// ErrNotFound means the service answered but has no usable product.
	ErrNotFound = errors.New("product not found")
	// ErrTransport means the service could not be reached or answered
	// with something that is not a product response.
	ErrTransport = errors.New("product lookup failed")
)

// Client queries the Open Food Facts product API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL uses
// DefaultBaseURL and a non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName   string `json:"product_name"`
		Quantity      string `json:"quantity"`
		ImageFrontURL string `json:"image_front_url"`
		ImageSmallURL string `json:"image_small_url"`
		URL           string `json:"url"`
	} `json:"product"`
}

// Lookup fetches the product for barcode. A product without a name counts
// as not found.
func (c *Client) Lookup(ctx context.Context, barcode string) (*model.Product, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s?fields=%s", c.baseURL, url.PathEscape(barcode), productFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pantryscan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: decoding response: %v", ErrTransport, err)
	}

	if body.Status != 1 || body.Product == nil || strings.TrimSpace(body.Product.ProductName) == "" {
		return nil, ErrNotFound
	}

	return &model.Product{
		Barcode:       barcode,
		Name:          strings.TrimSpace(body.Product.ProductName),
		Quantity:      body.Product.Quantity,
		ImageSmallURL: body.Product.ImageSmallURL,
		ImageFrontURL: body.Product.ImageFrontURL,
		URL:           body.Product.URL,
		FetchedAt:     time.Now().UTC(),
	}, nil
}
