// Package client es el cliente Go de la API de textil-api: resty para el transporte,
// servicios tipados por recurso y un QueryCache con invalidación por prefijo.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/textil-api/internal/application/dto"
)

// APIError respuesta no exitosa del backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// IsNotFound informa si err es un 404 del backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Params filtros de query string (?q=, ?store_id=, ?from=...).
type Params map[string]string

func (p Params) encode() string {
	v := url.Values{}
	for k, val := range p {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v.Encode()
}

// Client cliente HTTP de la API. Sin reintentos.
type Client struct {
	http      *resty.Client
	cache     *QueryCache
	staleTime time.Duration

	Auth         *AuthService
	Users        *Resource[dto.CreateUserRequest, dto.UpdateUserRequest, dto.UserResponse, dto.UserListResponse]
	Suppliers    *Resource[dto.CreateSupplierRequest, dto.UpdateSupplierRequest, dto.SupplierResponse, dto.SupplierListResponse]
	Fabrics      *FabricService
	FabricParams *Resource[dto.CreateFabricParamsRequest, dto.UpdateFabricParamsRequest, dto.FabricParamsResponse, dto.FabricParamsListResponse]
	Seamstresses *SeamstressService
	Products     *Resource[dto.CreateProductRequest, dto.UpdateProductRequest, dto.ProductResponse, dto.ProductListResponse]
	Stores       *Resource[dto.CreateStoreRequest, dto.UpdateStoreRequest, dto.StoreResponse, dto.StoreListResponse]
	Jobs         *JobService
	Inventory    *InventoryService
	Sales        *SaleService
	Carts        *CartService
	WebConfig    *WebConfigService
	Reports      *ReportService
}

// Option configura el Client.
type Option func(*Client)

// WithToken fija el Bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.http.SetAuthToken(token)
		}
	}
}

// WithTimeout timeout por petición (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithCache activa el QueryCache para las lecturas; staleTime es la frescura de cada entrada.
func WithCache(cache *QueryCache, staleTime time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.staleTime = staleTime
	}
}

// New construye el cliente contra baseURL (ej. http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{c: c}
	c.Users = newResource[dto.CreateUserRequest, dto.UpdateUserRequest, dto.UserResponse, dto.UserListResponse](c, "/api/usuarios", "usuarios")
	c.Suppliers = newResource[dto.CreateSupplierRequest, dto.UpdateSupplierRequest, dto.SupplierResponse, dto.SupplierListResponse](c, "/api/proveedores", "proveedores")
	c.Fabrics = &FabricService{Resource: newResource[dto.CreateFabricRequest, dto.UpdateFabricRequest, dto.FabricResponse, dto.FabricListResponse](c, "/api/telas", "telas")}
	c.FabricParams = newResource[dto.CreateFabricParamsRequest, dto.UpdateFabricParamsRequest, dto.FabricParamsResponse, dto.FabricParamsListResponse](c, "/api/parametros-tela", "parametros-tela")
	c.Seamstresses = &SeamstressService{Resource: newResource[dto.CreateSeamstressRequest, dto.UpdateSeamstressRequest, dto.SeamstressResponse, dto.SeamstressListResponse](c, "/api/costureros", "costureros")}
	c.Products = newResource[dto.CreateProductRequest, dto.UpdateProductRequest, dto.ProductResponse, dto.ProductListResponse](c, "/api/productos", "productos", "inventario")
	c.Stores = newResource[dto.CreateStoreRequest, dto.UpdateStoreRequest, dto.StoreResponse, dto.StoreListResponse](c, "/api/tiendas", "tiendas")
	c.Jobs = &JobService{c: c}
	c.Inventory = &InventoryService{c: c}
	c.Sales = &SaleService{c: c}
	c.Carts = &CartService{c: c}
	c.WebConfig = &WebConfigService{c: c}
	c.Reports = &ReportService{c: c}
	return c
}

// SetToken reemplaza el Bearer token (después de Login).
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// Invalidate descarta del cache las consultas bajo los prefijos dados.
func (c *Client) Invalidate(prefixes ...string) {
	if c.cache != nil {
		c.cache.Invalidate(prefixes...)
	}
}

// do ejecuta la petición; out puede ser nil. Toda respuesta >= 400 se convierte en *APIError.
func (c *Client) do(ctx context.Context, method, path string, query Params, body, out any) (*resty.Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetError(&dto.ErrorResponse{})
	for k, v := range query {
		if v != "" {
			req.SetQueryParam(k, v)
		}
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return resp, toAPIError(resp)
	}
	return resp, nil
}

func toAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode()}
	if e, ok := resp.Error().(*dto.ErrorResponse); ok && e != nil {
		apiErr.Code = e.Code
		apiErr.Message = e.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

// cached lee a través del QueryCache si está activo.
func cached[T any](c *Client, key string, fn func() (*T, error)) (*T, error) {
	if c.cache == nil {
		return fn()
	}
	v, err := c.cache.Fetch(key, c.staleTime, func() (any, error) { return fn() })
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

func getJSON[T any](ctx context.Context, c *Client, key, path string, q Params) (*T, error) {
	if enc := q.encode(); enc != "" {
		key += "?" + enc
	}
	return cached(c, key, func() (*T, error) {
		out := new(T)
		if _, err := c.do(ctx, http.MethodGet, path, q, nil, out); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func sendJSON[T any](ctx context.Context, c *Client, method, path string, body any, invalidate []string) (*T, error) {
	out := new(T)
	if _, err := c.do(ctx, method, path, nil, body, out); err != nil {
		return nil, err
	}
	c.Invalidate(invalidate...)
	return out, nil
}
