package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/199post/shop/models"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	carts    *CartService
	checkout *CheckoutService
	category *models.Category
}

func (s *CheckoutServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.carts = NewCartService(s.db)
	s.checkout = NewCheckoutService(s.db)
	s.category = createCategory(s.T(), s.db, "Phones", "phones", nil)
}

func (s *CheckoutServiceTestSuite) reloadStock(productID uint) int {
	var product models.Product
	require.NoError(s.T(), s.db.First(&product, productID).Error)
	return product.Stock
}

func (s *CheckoutServiceTestSuite) TestCheckoutEndToEnd() {
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "499.99", "", 5)

	_, err := s.carts.AddItem("alice", product.ID, 2)
	require.NoError(s.T(), err)

	order, err := s.checkout.Checkout("alice")
	require.NoError(s.T(), err)
	require.NotZero(s.T(), order.ID)
	require.NotEmpty(s.T(), order.Reference)
	require.Equal(s.T(), models.OrderStatusPending, order.Status)
	require.Len(s.T(), order.Items, 1)
	require.Equal(s.T(), 2, order.Items[0].Quantity)
	require.True(s.T(), order.Items[0].Price.Equal(decimal.RequireFromString("499.99")))
	require.True(s.T(), order.TotalPrice.Equal(decimal.RequireFromString("999.98")))

	require.Equal(s.T(), 3, s.reloadStock(product.ID))

	cart, err := s.carts.GetOrCreate("alice")
	require.NoError(s.T(), err)
	require.Empty(s.T(), cart.Items)

	// The now-empty cart cannot be checked out again.
	_, err = s.checkout.Checkout("alice")
	require.ErrorIs(s.T(), err, ErrEmptyCart)
}

func (s *CheckoutServiceTestSuite) TestCheckoutWithoutCartIsEmptyCart() {
	_, err := s.checkout.Checkout("nobody")
	require.ErrorIs(s.T(), err, ErrEmptyCart)
}

func (s *CheckoutServiceTestSuite) TestCheckoutFailureRollsBackEverything() {
	first := createProduct(s.T(), s.db, s.category.ID, "Phone X", "100.00", "", 10)
	second := createProduct(s.T(), s.db, s.category.ID, "Phone Y", "200.00", "", 10)

	_, err := s.carts.AddItem("alice", first.ID, 3)
	require.NoError(s.T(), err)
	_, err = s.carts.AddItem("alice", second.ID, 4)
	require.NoError(s.T(), err)

	// Stock drops behind the cart's back so the second line fails the
	// re-validation inside the transaction.
	require.NoError(s.T(), s.db.Model(&models.Product{}).
		Where("id = ?", second.ID).Update("stock", 2).Error)

	_, err = s.checkout.Checkout("alice")
	require.ErrorIs(s.T(), err, ErrInsufficientStock)
	require.Contains(s.T(), err.Error(), "Phone Y")

	// First line's decrement must have been rolled back.
	require.Equal(s.T(), 10, s.reloadStock(first.ID))
	require.Equal(s.T(), 2, s.reloadStock(second.ID))

	cart, err := s.carts.GetOrCreate("alice")
	require.NoError(s.T(), err)
	require.Len(s.T(), cart.Items, 2)
	require.Equal(s.T(), 3, cart.Items[0].Quantity)
	require.Equal(s.T(), 4, cart.Items[1].Quantity)

	var orders int64
	s.db.Model(&models.Order{}).Count(&orders)
	require.Zero(s.T(), orders)
}

func (s *CheckoutServiceTestSuite) TestOrderTotalImmuneToLaterPriceChanges() {
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "250.00", "", 5)

	_, err := s.carts.AddItem("alice", product.ID, 2)
	require.NoError(s.T(), err)
	order, err := s.checkout.Checkout("alice")
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("999.00")).Error)

	var reloaded models.Order
	require.NoError(s.T(), s.db.Preload("Items").First(&reloaded, order.ID).Error)
	require.True(s.T(), reloaded.TotalPrice.Equal(decimal.RequireFromString("500.00")))
	require.True(s.T(), reloaded.Items[0].Price.Equal(decimal.RequireFromString("250.00")))
}

func (s *CheckoutServiceTestSuite) TestCheckoutSnapshotsSalePrice() {
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "500.00", "400.00", 5)

	_, err := s.carts.AddItem("alice", product.ID, 1)
	require.NoError(s.T(), err)
	order, err := s.checkout.Checkout("alice")
	require.NoError(s.T(), err)

	require.True(s.T(), order.Items[0].Price.Equal(decimal.RequireFromString("400.00")))
	require.True(s.T(), order.TotalPrice.Equal(decimal.RequireFromString("400.00")))
}

func (s *CheckoutServiceTestSuite) TestStockConservationAcrossCheckouts() {
	const initialStock = 10
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "100.00", "", initialStock)

	checkedOut := 0
	for i := 0; i < 5; i++ {
		user := fmt.Sprintf("user-%d", i)
		_, err := s.carts.AddItem(user, product.ID, 3)
		if err != nil {
			require.ErrorIs(s.T(), err, ErrOutOfStock)
			break
		}
		if _, err := s.checkout.Checkout(user); err != nil {
			require.ErrorIs(s.T(), err, ErrInsufficientStock)
			break
		}
		checkedOut += 3
	}

	final := s.reloadStock(product.ID)
	require.Equal(s.T(), initialStock-checkedOut, final)
	require.GreaterOrEqual(s.T(), final, 0)
}

func (s *CheckoutServiceTestSuite) TestConcurrentCheckoutsNeverOversell() {
	const attempts = 4
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "100.00", "", 1)

	for i := 0; i < attempts; i++ {
		_, err := s.carts.AddItem(fmt.Sprintf("user-%d", i), product.ID, 1)
		require.NoError(s.T(), err)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.checkout.Checkout(fmt.Sprintf("user-%d", i))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(s.T(), err, ErrInsufficientStock)
		}
	}
	require.Equal(s.T(), 1, succeeded)
	require.Equal(s.T(), 0, s.reloadStock(product.ID))
}

func (s *CheckoutServiceTestSuite) TestItemAddedDuringCheckoutIsNeverLost() {
	first := createProduct(s.T(), s.db, s.category.ID, "Phone X", "100.00", "", 5)
	second := createProduct(s.T(), s.db, s.category.ID, "Phone Y", "100.00", "", 5)

	_, err := s.carts.AddItem("alice", first.ID, 1)
	require.NoError(s.T(), err)

	// Race an add against the checkout. Whatever the interleaving, the
	// added line must end up either in the order or still in the cart;
	// checkout only clears the lines it actually ordered.
	var (
		wg          sync.WaitGroup
		order       *models.Order
		checkoutErr error
		addErr      error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		order, checkoutErr = s.checkout.Checkout("alice")
	}()
	go func() {
		defer wg.Done()
		_, addErr = s.carts.AddItem("alice", second.ID, 1)
	}()
	wg.Wait()

	require.NoError(s.T(), checkoutErr)
	require.NoError(s.T(), addErr)

	cart, err := s.carts.GetOrCreate("alice")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, len(order.Items)+len(cart.Items))
}

func (s *CheckoutServiceTestSuite) TestCartRowSurvivesCheckout() {
	product := createProduct(s.T(), s.db, s.category.ID, "Phone X", "100.00", "", 5)

	_, err := s.carts.AddItem("alice", product.ID, 1)
	require.NoError(s.T(), err)
	cartBefore, err := s.carts.GetOrCreate("alice")
	require.NoError(s.T(), err)

	_, err = s.checkout.Checkout("alice")
	require.NoError(s.T(), err)

	cartAfter, err := s.carts.GetOrCreate("alice")
	require.NoError(s.T(), err)
	require.Equal(s.T(), cartBefore.ID, cartAfter.ID)
	require.Empty(s.T(), cartAfter.Items)
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}
