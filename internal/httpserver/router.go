package httpserver

import (
	"context"
	"log"

	"marketplace-orders/internal/domain"
	catalogsvc "marketplace-orders/internal/service/catalog"
	checkoutsvc "marketplace-orders/internal/service/checkout"
	identitysvc "marketplace-orders/internal/service/identity"
	paymentsvc "marketplace-orders/internal/service/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type identityService interface {
	Signup(ctx context.Context, in identitysvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type cartService interface {
	Get(ctx context.Context, buyerID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, buyerID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, buyerID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, buyerID string) error
}

type checkoutService interface {
	Checkout(ctx context.Context, buyerID string, items []checkoutsvc.Item, shippingAddress string, method domain.PaymentMethod) ([]string, error)
}

type orderService interface {
	Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, actor domain.Actor, orderID string, to domain.OrderStatus) (*domain.Order, error)
	MarkPaymentFailed(ctx context.Context, actor domain.Actor, orderID string) error
}

type paymentListener interface {
	HandleEvent(ctx context.Context, body []byte, signature string) (paymentsvc.Result, error)
}

type notificationService interface {
	ListFor(ctx context.Context, actor domain.Actor) ([]domain.Notification, error)
	MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error
}

type catalogService interface {
	Create(ctx context.Context, actor domain.Actor, in catalogsvc.CreateInput) (*domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
}

type vendorRequestService interface {
	Apply(ctx context.Context, actor domain.Actor, shopName, message string) (*domain.VendorRequest, error)
	List(ctx context.Context, actor domain.Actor, status *domain.VendorRequestStatus) ([]domain.VendorRequest, error)
	Decide(ctx context.Context, actor domain.Actor, requestID string, approve bool) (*domain.VendorRequest, error)
}

// Deps carries the services the router depends on.
type Deps struct {
	Identity       identityService
	Cart           cartService
	Checkout       checkoutService
	Orders         orderService
	Payments       paymentListener
	Notifications  notificationService
	Catalog        catalogService
	VendorRequests vendorRequestService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.Identity))
	router.POST("/login", loginHandler(deps.Identity))

	// Gateway callbacks authenticate by payload signature, not bearer token.
	router.POST("/webhooks/payment", paymentWebhookHandler(deps.Payments))

	router.GET("/products", listProductsHandler(deps.Catalog))
	router.GET("/products/:productID", getProductHandler(deps.Catalog))

	authed := router.Group("/", authMiddleware(deps.Identity))
	{
		authed.GET("/cart", getCartHandler(deps.Cart))
		authed.PUT("/cart/items/:productID", upsertCartItemHandler(deps.Cart))
		authed.DELETE("/cart/items/:productID", removeCartItemHandler(deps.Cart))
		authed.DELETE("/cart", clearCartHandler(deps.Cart))

		authed.POST("/checkout", checkoutHandler(deps.Cart, deps.Checkout))

		authed.GET("/orders", listOrdersHandler(deps.Orders))
		authed.GET("/orders/:orderID", getOrderHandler(deps.Orders))
		authed.GET("/vendor/orders", listVendorOrdersHandler(deps.Orders))
		authed.PATCH("/orders/:orderID/status", setOrderStatusHandler(deps.Orders))
		authed.PATCH("/orders/:orderID/payment-failed", markPaymentFailedHandler(deps.Orders))

		authed.GET("/notifications", listNotificationsHandler(deps.Notifications))
		authed.PATCH("/notifications/:notificationID/read", markNotificationReadHandler(deps.Notifications))

		authed.POST("/products", createProductHandler(deps.Catalog))
		authed.GET("/vendor/products", listVendorProductsHandler(deps.Catalog))

		authed.POST("/vendor-requests", applyVendorRequestHandler(deps.VendorRequests))
		authed.GET("/vendor-requests", listVendorRequestsHandler(deps.VendorRequests))
		authed.PATCH("/vendor-requests/:requestID", decideVendorRequestHandler(deps.VendorRequests))
	}

	return router, nil
}
