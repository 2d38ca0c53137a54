package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ryavnn/Restaurant-Management-System/internal/domain/model"
	repo "github.com/Ryavnn/Restaurant-Management-System/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	catalog MenuCatalog
	gate    AuthorizationGate
	events  OrderEventPublisher
	metrics OrderMetrics
	clock   Clock
	idGen   IDGenerator
	log     *log.Entry
}

// events/metricsはnilなら何もしない
func NewOrderUsecase(
	tx repo.TransactionManager,
	catalog MenuCatalog,
	gate AuthorizationGate,
	events OrderEventPublisher,
	metrics OrderMetrics,
	clock Clock,
	idGen IDGenerator,
	logger *log.Entry,
) *OrderUsecase {
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &OrderUsecase{
		tx:      tx,
		catalog: catalog,
		gate:    gate,
		events:  events,
		metrics: metrics,
		clock:   clock,
		idGen:   idGen,
		log:     logger.WithField("component", "order-usecase"),
	}
}

type CreateOrderItemInput struct {
	Name       string
	Price      *float64
	Quantity   *int
	MenuItemID *int64
}

type CreateOrderInput struct {
	WaiterName  string
	TableNumber *int
	Items       []CreateOrderItemInput
}

// 作成時のレスポンス（itemsは返さない）
type CreatedOrderOutput struct {
	ID          int64     `json:"id"`
	WaiterName  string    `json:"waiter_name"`
	TableNumber *int      `json:"table_number"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdatedOrderOutput struct {
	ID          int64     `json:"id"`
	WaiterName  string    `json:"waiter_name"`
	TableNumber *int      `json:"table_number"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItemOutput struct {
	ID         int64   `json:"id"`
	MenuItemID *int64  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Total      float64 `json:"total"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	WaiterName  string            `json:"waiter_name"`
	TableNumber *int              `json:"table_number"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	TotalAmount float64           `json:"total_amount"`
	Items       []OrderItemOutput `json:"items"`
}

type DeletedOrderOutput struct {
	ID           int64
	ItemsDeleted int64
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (CreatedOrderOutput, error) {
	waiter := strings.TrimSpace(in.WaiterName)
	if waiter == "" {
		return CreatedOrderOutput{}, ValidationError("waiter_name is required")
	}
	if len(in.Items) == 0 {
		return CreatedOrderOutput{}, ValidationError("items must contain at least one entry")
	}

	//合計は送られてきた価格で計算する（メニューの現在価格では上書きしない）
	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return CreatedOrderOutput{}, ValidationError(fmt.Sprintf("items[%d].name is required", i))
		}
		if it.Price == nil {
			return CreatedOrderOutput{}, ValidationError(fmt.Sprintf("items[%d].price is required", i))
		}
		if *it.Price < 0 {
			return CreatedOrderOutput{}, ValidationError(fmt.Sprintf("items[%d].price must be >= 0", i))
		}
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if qty <= 0 {
			return CreatedOrderOutput{}, ValidationError(fmt.Sprintf("items[%d].quantity must be positive", i))
		}

		total = total.Add(lineTotal(*it.Price, qty))
		items = append(items, model.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       name,
			Quantity:   qty,
			Price:      *it.Price,
		})
	}

	//メニューIDの解決（存在しなければ参照なしで保存）
	for i := range items {
		ref, err := u.resolveMenuItem(ctx, items[i].MenuItemID)
		if err != nil {
			u.fail("create", err)
			return CreatedOrderOutput{}, err
		}
		items[i].MenuItemID = ref
	}

	//DBはマイクロ秒までなので揃えておく
	now := u.clock.Now().Truncate(time.Microsecond)
	totalAmount, _ := total.Float64()
	order := model.Order{
		WaiterName:  waiter,
		TableNumber: in.TableNumber,
		Status:      model.OrderStatusPending,
		TotalAmount: totalAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	//注文と明細は同じトランザクション（親IDを先に採番）
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, &order); err != nil {
			return StorageError(err)
		}
		//キャッシュ経由の参照は古いことがあるのでtx内で確認し直す
		if err := u.confirmMenuRefs(ctx, r.MenuItems(), items); err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, items); err != nil {
			return StorageError(err)
		}
		return nil
	})
	if err != nil {
		u.fail("create", err)
		return CreatedOrderOutput{}, err
	}

	u.metrics.OrderCreated(len(items), order.TotalAmount)
	u.publish(ctx, model.OrderEventCreated, order)

	return CreatedOrderOutput{
		ID:          order.ID,
		WaiterName:  order.WaiterName,
		TableNumber: order.TableNumber,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, ValidationError("invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFoundError("Order not found")
		}
		if err != nil {
			return StorageError(err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return StorageError(err)
		}
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		u.fail("get", err)
		return OrderOutput{}, err
	}
	return out, nil
}

// statusが空なら全件。新しい順。
func (u *OrderUsecase) ListOrders(ctx context.Context, status string) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().List(ctx, repo.OrderListFilter{Status: status})
		if err != nil {
			return StorageError(err)
		}

		ids := make([]int64, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		itemsByOrder, err := r.OrderItems().ListByOrderIDs(ctx, ids)
		if err != nil {
			return StorageError(err)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o, itemsByOrder[o.ID]))
		}
		return nil
	})
	if err != nil {
		u.fail("list", err)
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 指定されたフィールドだけ更新する。total_amountとitemsは触らない。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, orderID int64, patch repo.OrderPatch) (UpdatedOrderOutput, error) {
	if orderID <= 0 {
		return UpdatedOrderOutput{}, ValidationError("invalid id")
	}
	if patch.WaiterName != nil {
		w := strings.TrimSpace(*patch.WaiterName)
		if w == "" {
			return UpdatedOrderOutput{}, ValidationError("waiter_name must not be empty")
		}
		patch.WaiterName = &w
	}

	var updated model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Orders().Update(ctx, orderID, patch, u.clock.Now().Truncate(time.Microsecond))
		if errors.Is(err, repo.ErrNotFound) {
			return NotFoundError("Order not found")
		}
		if err != nil {
			return StorageError(err)
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return StorageError(err)
		}
		updated = o
		return nil
	})
	if err != nil {
		u.fail("update", err)
		return UpdatedOrderOutput{}, err
	}

	u.metrics.OrderUpdated(string(updated.Status))
	u.publish(ctx, model.OrderEventUpdated, updated)

	return UpdatedOrderOutput{
		ID:          updated.ID,
		WaiterName:  updated.WaiterName,
		TableNumber: updated.TableNumber,
		Status:      string(updated.Status),
		TotalAmount: updated.TotalAmount,
		UpdatedAt:   updated.UpdatedAt,
	}, nil
}

// マネージャーのみ。明細→注文の順で削除する。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, who Identity, orderID int64) (DeletedOrderOutput, error) {
	if err := RequireManager(ctx, u.gate, who); err != nil {
		return DeletedOrderOutput{}, err
	}
	if orderID <= 0 {
		return DeletedOrderOutput{}, ValidationError("invalid id")
	}

	var out DeletedOrderOutput
	var deleted model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFoundError("Order not found")
		}
		if err != nil {
			return StorageError(err)
		}

		n, err := r.OrderItems().DeleteByOrderID(ctx, orderID)
		if err != nil {
			return StorageError(err)
		}

		err = r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFoundError("Order not found")
		}
		if err != nil {
			return StorageError(err)
		}

		before, _ := json.Marshal(map[string]interface{}{
			"waiter_name":  o.WaiterName,
			"table_number": o.TableNumber,
			"status":       o.Status,
			"total_amount": o.TotalAmount,
			"items":        n,
		})
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			Actor:        who.Subject,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return StorageError(err)
		}

		deleted = o
		out = DeletedOrderOutput{ID: orderID, ItemsDeleted: n}
		return nil
	})
	if err != nil {
		u.fail("delete", err)
		return DeletedOrderOutput{}, err
	}

	u.metrics.OrderDeleted()
	u.publish(ctx, model.OrderEventDeleted, deleted)

	u.log.WithFields(log.Fields{
		"order_id": orderID,
		"actor":    who.Subject,
		"items":    out.ItemsDeleted,
	}).Info("order deleted")

	return out, nil
}

func (u *OrderUsecase) resolveMenuItem(ctx context.Context, id *int64) (*int64, error) {
	if id == nil || *id <= 0 {
		return nil, nil
	}
	m, err := u.catalog.Lookup(ctx, *id)
	if errors.Is(err, repo.ErrNotFound) {
		u.log.WithField("menu_item_id", *id).Debug("menu item not found, storing order item without reference")
		return nil, nil
	}
	if err != nil {
		return nil, StorageError(err)
	}
	ref := m.ID
	return &ref, nil
}

// 削除済みのメニューを指していたら参照なしにする
func (u *OrderUsecase) confirmMenuRefs(ctx context.Context, menus repo.MenuItemRepository, items []model.OrderItem) error {
	for i := range items {
		if items[i].MenuItemID == nil {
			continue
		}
		_, err := menus.FindByID(ctx, *items[i].MenuItemID)
		if errors.Is(err, repo.ErrNotFound) {
			u.log.WithField("menu_item_id", *items[i].MenuItemID).Debug("menu item removed before insert, storing order item without reference")
			items[i].MenuItemID = nil
			continue
		}
		if err != nil {
			return StorageError(err)
		}
	}
	return nil
}

// コミット後に送る。失敗しても注文は確定済みなのでログだけ残す。
func (u *OrderUsecase) publish(ctx context.Context, typ model.OrderEventType, o model.Order) {
	ev := model.OrderEvent{
		ID:          u.idGen.NewID(),
		Type:        typ,
		OrderID:     o.ID,
		Status:      string(o.Status),
		TableNumber: o.TableNumber,
		TotalAmount: o.TotalAmount,
		OccurredAt:  u.clock.Now(),
	}
	if err := u.events.Publish(ctx, ev); err != nil {
		u.log.WithError(err).WithFields(log.Fields{
			"order_id": o.ID,
			"type":     typ,
		}).Warn("failed to publish order event")
	}
}

func (u *OrderUsecase) fail(op string, err error) {
	if errors.Is(err, ErrStorage) {
		u.metrics.OrderFailed(op)
		u.log.WithError(err).WithField("op", op).Error("order storage failure")
	}
}

// price × quantity（floatの誤差を避けるためdecimalで計算）
func lineTotal(price float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty)))
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		t, _ := lineTotal(it.Price, it.Quantity).Float64()
		outItems = append(outItems, OrderItemOutput{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price,
			Total:      t,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		WaiterName:  o.WaiterName,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		TotalAmount: o.TotalAmount,
		Items:       outItems,
	}
}
