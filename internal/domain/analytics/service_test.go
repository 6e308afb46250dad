package analytics

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestDashboard(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&product.Category{}, &product.Product{}, &user.User{}))

	category := product.Category{Name: "Sneakers", Slug: "sneakers", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	active := product.Product{SKU: "SNK-001", Name: "A", Slug: "a", Price: 100, CategoryID: category.ID, IsActive: true}
	require.NoError(t, db.Create(&active).Error)
	hidden := product.Product{SKU: "SNK-002", Name: "B", Slug: "b", Price: 100, CategoryID: category.ID, IsActive: true}
	require.NoError(t, db.Create(&hidden).Error)
	require.NoError(t, db.Model(&hidden).Update("is_active", false).Error)

	require.NoError(t, db.Create(&user.User{Email: "admin@example.com", Password: "x", IsActive: true}).Error)

	// Guest cart snapshots; user carts are not counted
	require.NoError(t, mr.Set("cart:session:abc", "{}"))
	require.NoError(t, mr.Set("cart:session:def", "{}"))
	require.NoError(t, mr.Set("cart:user:1", "{}"))

	summary, err := NewService(db, client, &config.Config{}).Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalProducts)
	assert.Equal(t, int64(1), summary.ActiveProducts)
	assert.Equal(t, int64(1), summary.TotalCategories)
	assert.Equal(t, int64(1), summary.TotalUsers)
	assert.Equal(t, int64(2), summary.OpenGuestCarts)
}
