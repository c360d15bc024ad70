package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-delivery-api/internal/domains/reviews/ports"
	"github.com/Apurer/go-gin-delivery-api/internal/platform/transaction"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM. A unique index on order_id
// backs the one-review-per-order rule.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type reviewRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	OrderID    int64     `gorm:"column:order_id;uniqueIndex"`
	UserID     int64     `gorm:"column:user_id"`
	ShopID     int64     `gorm:"column:shop_id;index:idx_reviews_shop_time"`
	Rating     int       `gorm:"column:rating"`
	Content    string    `gorm:"column:content;type:varchar(100)"`
	ReviewedAt time.Time `gorm:"column:reviewed_at;index:idx_reviews_shop_time"`
}

func (reviewRecord) TableName() string { return "reviews" }

func (r *Repository) Save(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	record := toRecord(review)
	if err := transaction.DB(ctx, r.db).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyReviewed
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ExistsByOrderID(ctx context.Context, orderID int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := transaction.DB(ctx, r.db).Model(&reviewRecord{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CountByShop(ctx context.Context, shopID int64) (int, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := transaction.DB(ctx, r.db).Model(&reviewRecord{}).Where("shop_id = ?", shopID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *Repository) ListByShopAndRating(ctx context.Context, shopID int64, ratings domain.RatingRange) ([]*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []reviewRecord
	if err := transaction.DB(ctx, r.db).
		Where("shop_id = ? AND rating BETWEEN ? AND ?", shopID, ratings.Min, ratings.Max).
		Order("reviewed_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, 0, len(records))
	for i := range records {
		reviews = append(reviews, records[i].toDomain())
	}
	return reviews, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}

func toRecord(review *domain.Review) reviewRecord {
	return reviewRecord{
		ID:         review.ID,
		OrderID:    review.OrderID,
		UserID:     review.UserID,
		ShopID:     review.ShopID,
		Rating:     review.Rating,
		Content:    review.Content,
		ReviewedAt: review.ReviewedAt,
	}
}

func (r reviewRecord) toDomain() *domain.Review {
	return &domain.Review{
		ID:         r.ID,
		OrderID:    r.OrderID,
		UserID:     r.UserID,
		ShopID:     r.ShopID,
		Rating:     r.Rating,
		Content:    r.Content,
		ReviewedAt: r.ReviewedAt,
	}
}
