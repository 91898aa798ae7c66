package client

import (
	"context"
	"net/http"

	"github.com/jhoicas/textil-api/internal/application/dto"
)

// Resource CRUD genérico sobre un recurso REST (/api/<recurso>).
// Las lecturas se cachean bajo key; las escrituras invalidan key y las claves relacionadas.
type Resource[C, U, R, L any] struct {
	c          *Client
	path       string
	key        string
	invalidate []string
}

func newResource[C, U, R, L any](c *Client, path, key string, related ...string) *Resource[C, U, R, L] {
	return &Resource[C, U, R, L]{c: c, path: path, key: key, invalidate: append([]string{key}, related...)}
}

func (r *Resource[C, U, R, L]) List(ctx context.Context, q Params) (*L, error) {
	return getJSON[L](ctx, r.c, r.key+":list", r.path, q)
}

func (r *Resource[C, U, R, L]) Get(ctx context.Context, id string) (*R, error) {
	return getJSON[R](ctx, r.c, r.key+":"+id, r.path+"/"+id, nil)
}

func (r *Resource[C, U, R, L]) Create(ctx context.Context, in C) (*R, error) {
	return sendJSON[R](ctx, r.c, http.MethodPost, r.path, in, r.invalidate)
}

func (r *Resource[C, U, R, L]) Update(ctx context.Context, id string, in U) (*R, error) {
	return sendJSON[R](ctx, r.c, http.MethodPatch, r.path+"/"+id, in, r.invalidate)
}

func (r *Resource[C, U, R, L]) Delete(ctx context.Context, id string) error {
	if _, err := r.c.do(ctx, http.MethodDelete, r.path+"/"+id, nil, nil, nil); err != nil {
		return err
	}
	r.c.Invalidate(r.invalidate...)
	return nil
}

// AuthService login y perfil.
type AuthService struct{ c *Client }

// Login autentica y deja el token puesto en el cliente.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	out, err := sendJSON[dto.LoginResponse](ctx, s.c, http.MethodPost, "/api/auth/login",
		dto.LoginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}
	s.c.SetToken(out.Token)
	return out, nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserResponse, error) {
	out := new(dto.UserResponse)
	if _, err := s.c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword cambia la contraseña de un usuario (admin).
func (s *AuthService) ChangePassword(ctx context.Context, userID, password string) error {
	_, err := s.c.do(ctx, http.MethodPatch, "/api/usuarios/"+userID+"/password", nil,
		dto.ChangePasswordRequest{Password: password}, nil)
	return err
}

// FabricService telas más compras.
type FabricService struct {
	*Resource[dto.CreateFabricRequest, dto.UpdateFabricRequest, dto.FabricResponse, dto.FabricListResponse]
}

func (s *FabricService) Purchase(ctx context.Context, id string, in dto.FabricPurchaseRequest) (*dto.FabricResponse, error) {
	return sendJSON[dto.FabricResponse](ctx, s.c, http.MethodPost, s.path+"/"+id+"/compras", in, []string{"telas"})
}

// SeamstressService costureros más sus trabajos.
type SeamstressService struct {
	*Resource[dto.CreateSeamstressRequest, dto.UpdateSeamstressRequest, dto.SeamstressResponse, dto.SeamstressListResponse]
}

func (s *SeamstressService) Jobs(ctx context.Context, id string, q Params) (*dto.JobListResponse, error) {
	return getJSON[dto.JobListResponse](ctx, s.c, "trabajos:costurero:"+id, s.path+"/"+id+"/trabajos", q)
}

// JobService trabajos de confección.
type JobService struct{ c *Client }

func (s *JobService) List(ctx context.Context, q Params) (*dto.JobListResponse, error) {
	return getJSON[dto.JobListResponse](ctx, s.c, "trabajos:list", "/api/trabajos", q)
}

func (s *JobService) Get(ctx context.Context, id string) (*dto.JobResponse, error) {
	return getJSON[dto.JobResponse](ctx, s.c, "trabajos:"+id, "/api/trabajos/"+id, nil)
}

// Create envía tela a un costurero: cambia stock de tela.
func (s *JobService) Create(ctx context.Context, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	return sendJSON[dto.JobResponse](ctx, s.c, http.MethodPost, "/api/trabajos", in, []string{"trabajos", "telas", "reportes"})
}

func (s *JobService) Update(ctx context.Context, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	return sendJSON[dto.JobResponse](ctx, s.c, http.MethodPatch, "/api/trabajos/"+id, in, []string{"trabajos"})
}

// CompleteJob recibe prendas: toca trabajos, inventario, costo de productos y tela.
func (s *JobService) CompleteJob(ctx context.Context, id string, receivedPieces int) (*dto.JobResponse, error) {
	return sendJSON[dto.JobResponse](ctx, s.c, http.MethodPost, "/api/trabajos/"+id+"/completar",
		dto.CompleteJobRequest{ReceivedPieces: receivedPieces},
		[]string{"trabajos", "inventario", "productos", "telas", "reportes"})
}

func (s *JobService) CancelJob(ctx context.Context, id string) (*dto.JobResponse, error) {
	return sendJSON[dto.JobResponse](ctx, s.c, http.MethodPost, "/api/trabajos/"+id+"/cancelar", nil,
		[]string{"trabajos", "telas", "reportes"})
}

// InventoryService existencias, movimientos y traslados.
type InventoryService struct{ c *Client }

func (s *InventoryService) Store(ctx context.Context, storeID string, lowOnly bool) (*dto.StoreInventoryResponse, error) {
	q := Params{"store_id": storeID}
	if lowOnly {
		q["low"] = "true"
	}
	return getJSON[dto.StoreInventoryResponse](ctx, s.c, "inventario:tienda", "/api/inventario", q)
}

func (s *InventoryService) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	return sendJSON[dto.MovementResult](ctx, s.c, http.MethodPost, "/api/inventario/movimientos", in,
		[]string{"inventario", "productos", "reportes"})
}

func (s *InventoryService) Movements(ctx context.Context, q Params) ([]dto.MovementResponse, error) {
	out, err := getJSON[[]dto.MovementResponse](ctx, s.c, "inventario:movimientos", "/api/inventario/movimientos", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *InventoryService) SetMinimum(ctx context.Context, in dto.SetMinimumRequest) error {
	if _, err := s.c.do(ctx, http.MethodPut, "/api/inventario/minimo", nil, in, nil); err != nil {
		return err
	}
	s.c.Invalidate("inventario", "reportes")
	return nil
}

// Transfer traslada unidades entre tiendas.
func (s *InventoryService) Transfer(ctx context.Context, in dto.TransferRequest) (*dto.MovementResult, error) {
	return sendJSON[dto.MovementResult](ctx, s.c, http.MethodPost, "/api/traslados", in,
		[]string{"inventario", "traslados"})
}

func (s *InventoryService) Transfers(ctx context.Context, q Params) ([]dto.TransferResponse, error) {
	out, err := getJSON[[]dto.TransferResponse](ctx, s.c, "traslados:list", "/api/traslados", q)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *InventoryService) Replenishment(ctx context.Context, storeID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	out, err := getJSON[[]dto.ReplenishmentSuggestionDTO](ctx, s.c, "inventario:reposicion", "/api/inventario/reposicion", Params{"store_id": storeID})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// SaleService ventas de mostrador.
type SaleService struct{ c *Client }

var saleInvalidates = []string{"ventas", "inventario", "reportes"}

func (s *SaleService) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	return sendJSON[dto.SaleResponse](ctx, s.c, http.MethodPost, "/api/ventas", in, saleInvalidates)
}

func (s *SaleService) List(ctx context.Context, q Params) (*dto.SaleListResponse, error) {
	return getJSON[dto.SaleListResponse](ctx, s.c, "ventas:list", "/api/ventas", q)
}

func (s *SaleService) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	return getJSON[dto.SaleResponse](ctx, s.c, "ventas:"+id, "/api/ventas/"+id, nil)
}

func (s *SaleService) VoidSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	return sendJSON[dto.SaleResponse](ctx, s.c, http.MethodPost, "/api/ventas/"+id+"/anular", nil, saleInvalidates)
}

// CartService pedidos web.
type CartService struct{ c *Client }

// Create crea un pedido por el endpoint público (no requiere token).
func (s *CartService) Create(ctx context.Context, in dto.CreateCartRequest) (*dto.CartResponse, error) {
	return sendJSON[dto.CartResponse](ctx, s.c, http.MethodPost, "/api/public/carritos", in, []string{"carritos"})
}

func (s *CartService) List(ctx context.Context, q Params) (*dto.CartListResponse, error) {
	return getJSON[dto.CartListResponse](ctx, s.c, "carritos:list", "/api/carritos", q)
}

func (s *CartService) Get(ctx context.Context, id string) (*dto.CartResponse, error) {
	return getJSON[dto.CartResponse](ctx, s.c, "carritos:"+id, "/api/carritos/"+id, nil)
}

// CheckoutCart convierte el pedido en venta.
func (s *CartService) CheckoutCart(ctx context.Context, id string, in dto.CheckoutCartRequest) (*dto.CartResponse, error) {
	return sendJSON[dto.CartResponse](ctx, s.c, http.MethodPost, "/api/carritos/"+id+"/completar", in,
		append([]string{"carritos"}, saleInvalidates...))
}

func (s *CartService) CancelCart(ctx context.Context, id string) (*dto.CartResponse, error) {
	return sendJSON[dto.CartResponse](ctx, s.c, http.MethodPost, "/api/carritos/"+id+"/cancelar", nil, []string{"carritos"})
}

// WebConfigService configuración de la tienda web.
type WebConfigService struct{ c *Client }

func (s *WebConfigService) Get(ctx context.Context) (*dto.WebConfigResponse, error) {
	return getJSON[dto.WebConfigResponse](ctx, s.c, "config-web", "/api/public/config-web", nil)
}

func (s *WebConfigService) Save(ctx context.Context, in dto.WebConfigRequest) (*dto.WebConfigResponse, error) {
	return sendJSON[dto.WebConfigResponse](ctx, s.c, http.MethodPut, "/api/config-web", in, []string{"config-web"})
}

// ReportService tablero y descargas PDF.
type ReportService struct{ c *Client }

func (s *ReportService) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	return getJSON[dto.DashboardSummaryDTO](ctx, s.c, "reportes:resumen", "/api/reportes/resumen", nil)
}

// Tipos de reporte PDF.
const (
	ReportSales     = "ventas"
	ReportInventory = "inventario"
	ReportJobs      = "trabajos"
)

// DownloadReport descarga /api/reportes/<kind>.pdf con los filtros dados. No se cachea.
func (s *ReportService) DownloadReport(ctx context.Context, kind string, q Params) ([]byte, error) {
	resp, err := s.c.do(ctx, http.MethodGet, "/api/reportes/"+kind+".pdf", q, nil, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}
