package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. It joins the transaction
// carried by the context when there is one.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Schema is owned by platform/migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate, including its menu snapshot, to a relational table.
type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	UserID    int64           `gorm:"column:user_id;index"`
	ShopID    int64           `gorm:"column:shop_id;index:idx_orders_shop_status"`
	MenuID    int64           `gorm:"column:menu_id"`
	MenuName  string          `gorm:"column:menu_name"`
	MenuPrice decimal.Decimal `gorm:"column:menu_price;type:numeric(12,2)"`
	Address   string          `gorm:"column:address"`
	Phone     string          `gorm:"column:phone"`
	Status    string          `gorm:"column:status;type:varchar(32);index:idx_orders_shop_status"`
	CreatedAt time.Time       `gorm:"column:created_at;index"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order, or persists the status of an existing one.
// Snapshot columns are never rewritten.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	db := transaction.DB(ctx, r.db)
	if order.ID == 0 {
		record := toRecord(order)
		if err := db.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := db.Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     string(order.Status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.first(transaction.DB(ctx, r.db), id)
}

// GetForUpdate takes a row lock when called inside a transaction so concurrent
// status changes on the same order serialize.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := transaction.DB(ctx, r.db)
	if transaction.InTx(ctx) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(db, id)
}

func (r *Repository) ListByShop(ctx context.Context, shopID int64, statuses []domain.Status) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := transaction.DB(ctx, r.db).Where("shop_id = ?", shopID)
	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, status := range statuses {
			names = append(names, string(status))
		}
		query = query.Where("status = ANY(?)", pq.Array(names))
	}
	return r.list(query)
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.list(transaction.DB(ctx, r.db).Where("user_id = ?", userID))
}

func (r *Repository) first(db *gorm.DB, id int64) (*domain.Order, error) {
	var record orderRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) list(query *gorm.DB) ([]*domain.Order, error) {
	var records []orderRecord
	if err := query.Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:        order.ID,
		UserID:    order.UserID,
		ShopID:    order.ShopID,
		MenuID:    order.MenuID,
		MenuName:  order.Menu.Name(),
		MenuPrice: order.Menu.Price(),
		Address:   order.Address,
		Phone:     order.Phone,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		ShopID:    r.ShopID,
		MenuID:    r.MenuID,
		Menu:      domain.NewMenuSnapshot(r.MenuName, r.MenuPrice),
		Address:   r.Address,
		Phone:     r.Phone,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
