package services

import (
	"context"

	"gorm.io/gorm"

	"example.com/backstage/services/crusher/internal/models"
	"example.com/backstage/services/crusher/internal/repositories"
)

type salesOrderStore interface {
	Create(ctx context.Context, order *models.SalesOrder) error
	GetByID(ctx context.Context, id uint) (*models.SalesOrder, error)
	List(ctx context.Context) ([]models.SalesOrder, error)
	Update(ctx context.Context, order *models.SalesOrder) error
	ReplaceItems(ctx context.Context, orderID uint, items []models.SalesOrderItem) error
	Delete(ctx context.Context, id uint) error
}

type purchaseOrderStore interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, id uint) (*models.PurchaseOrder, error)
	List(ctx context.Context) ([]models.PurchaseOrder, error)
	Update(ctx context.Context, order *models.PurchaseOrder) error
	Delete(ctx context.Context, id uint) error
}

// OrderService owns sales and purchase orders
type OrderService struct {
	salesRepo    salesOrderStore
	purchaseRepo purchaseOrderStore
	audit        auditStore
}

// NewOrderService creates the order service over a database handle
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		salesRepo:    repositories.NewSalesOrderRepository(db),
		purchaseRepo: repositories.NewPurchaseOrderRepository(db),
		audit:        repositories.NewAuditLogRepository(db),
	}
}

// CreateSalesOrder inserts an order header with its line items. An order
// needs at least one item; items default their unit to Ton.
func (s *OrderService) CreateSalesOrder(ctx context.Context, actor Actor, order *models.SalesOrder) error {
	if len(order.Items) == 0 {
		return validationErrorf("a sales order needs at least one line item")
	}
	for i := range order.Items {
		if order.Items[i].Unit == "" {
			order.Items[i].Unit = "Ton"
		}
	}
	if err := s.salesRepo.Create(ctx, order); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "sales_order", order.ID, order)
	return nil
}

// GetSalesOrder gets an order with customer and items loaded
func (s *OrderService) GetSalesOrder(ctx context.Context, id uint) (*models.SalesOrder, error) {
	return s.salesRepo.GetByID(ctx, id)
}

// ListSalesOrders returns all orders
func (s *OrderService) ListSalesOrders(ctx context.Context) ([]models.SalesOrder, error) {
	return s.salesRepo.List(ctx)
}

// UpdateSalesOrder saves header changes and, when items are supplied,
// replaces the line-item set
func (s *OrderService) UpdateSalesOrder(ctx context.Context, actor Actor, order *models.SalesOrder) error {
	if err := s.salesRepo.Update(ctx, order); err != nil {
		return err
	}
	if order.Items != nil {
		if err := s.salesRepo.ReplaceItems(ctx, order.ID, order.Items); err != nil {
			return err
		}
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "sales_order", order.ID, order)
	return nil
}

// DeleteSalesOrder removes an order. Its items go with it; dispatches that
// referenced it become unassigned.
func (s *OrderService) DeleteSalesOrder(ctx context.Context, actor Actor, id uint) error {
	if err := s.salesRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "sales_order", id, nil)
	return nil
}

// CreatePurchaseOrder inserts a purchase order, defaulting status to PENDING
func (s *OrderService) CreatePurchaseOrder(ctx context.Context, actor Actor, order *models.PurchaseOrder) error {
	if order.Status == "" {
		order.Status = models.PurchaseOrderStatusPending
	}
	if !order.Status.Valid() {
		return validationErrorf("invalid purchase order status %q", order.Status)
	}
	if err := s.purchaseRepo.Create(ctx, order); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionCreate, "purchase_order", order.ID, order)
	return nil
}

// GetPurchaseOrder gets a purchase order with vendor and material loaded
func (s *OrderService) GetPurchaseOrder(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	return s.purchaseRepo.GetByID(ctx, id)
}

// ListPurchaseOrders returns all purchase orders
func (s *OrderService) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	return s.purchaseRepo.List(ctx)
}

// UpdatePurchaseOrderStatus moves a purchase order between fulfillment states
func (s *OrderService) UpdatePurchaseOrderStatus(ctx context.Context, actor Actor, id uint, status models.PurchaseOrderStatus) error {
	if !status.Valid() {
		return validationErrorf("invalid purchase order status %q", status)
	}
	order, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	order.Status = status
	if err := s.purchaseRepo.Update(ctx, order); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionUpdate, "purchase_order", id, map[string]string{"status": string(status)})
	return nil
}

// DeletePurchaseOrder removes a purchase order; dispatches that referenced
// it become unassigned
func (s *OrderService) DeletePurchaseOrder(ctx context.Context, actor Actor, id uint) error {
	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		return err
	}
	recordAudit(ctx, s.audit, actor, models.AuditActionDelete, "purchase_order", id, nil)
	return nil
}
