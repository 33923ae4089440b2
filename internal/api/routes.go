package api

import (
	"net/http"

	"github.com/aaravmahajanofficial/bookstore-api/internal/api/handlers"
	"github.com/aaravmahajanofficial/bookstore-api/internal/api/middleware"
)

type Handlers struct {
	User     *handlers.UserHandler
	Catalog  *handlers.CatalogHandler
	Review   *handlers.ReviewHandler
	Cart     *handlers.CartHandler
	Wishlist *handlers.WishlistHandler
	Order    *handlers.OrderHandler
	Payment  *handlers.PaymentHandler
}

// RegisterRoutes mounts the /api/v1 surface on mux. Catalog reads are public,
// catalog writes and everything user-scoped go through auth.
func RegisterRoutes(mux *http.ServeMux, h *Handlers, auth *middleware.AuthMiddleware) {

	// Accounts
	mux.HandleFunc("POST /api/v1/register", h.User.Register())
	mux.HandleFunc("GET /api/v1/verify/{token}", h.User.VerifyEmail())
	mux.HandleFunc("POST /api/v1/token", h.User.Login())
	mux.HandleFunc("POST /api/v1/token/refresh", h.User.RefreshToken())
	mux.HandleFunc("POST /api/v1/password-reset", h.User.RequestPasswordReset())
	mux.HandleFunc("POST /api/v1/password-reset-confirm/{uid}/{token}", h.User.ConfirmPasswordReset())
	mux.HandleFunc("GET /api/v1/profile", auth.Authenticate(h.User.GetProfile()))
	mux.HandleFunc("PUT /api/v1/profile", auth.Authenticate(h.User.UpdateProfile()))

	// Catalog
	mux.HandleFunc("GET /api/v1/authors", h.Catalog.ListAuthors())
	mux.HandleFunc("POST /api/v1/authors", auth.Authenticate(h.Catalog.CreateAuthor()))
	mux.HandleFunc("GET /api/v1/authors/{id}", h.Catalog.GetAuthor())
	mux.HandleFunc("PUT /api/v1/authors/{id}", auth.Authenticate(h.Catalog.UpdateAuthor()))
	mux.HandleFunc("DELETE /api/v1/authors/{id}", auth.Authenticate(h.Catalog.DeleteAuthor()))

	mux.HandleFunc("GET /api/v1/categories", h.Catalog.ListCategories())
	mux.HandleFunc("POST /api/v1/categories", auth.Authenticate(h.Catalog.CreateCategory()))
	mux.HandleFunc("GET /api/v1/categories/{id}", h.Catalog.GetCategory())
	mux.HandleFunc("PUT /api/v1/categories/{id}", auth.Authenticate(h.Catalog.UpdateCategory()))
	mux.HandleFunc("DELETE /api/v1/categories/{id}", auth.Authenticate(h.Catalog.DeleteCategory()))

	mux.HandleFunc("GET /api/v1/books", h.Catalog.ListBooks())
	mux.HandleFunc("POST /api/v1/books", auth.Authenticate(h.Catalog.CreateBook()))
	mux.HandleFunc("GET /api/v1/books/{id}", h.Catalog.GetBook())
	mux.HandleFunc("PUT /api/v1/books/{id}", auth.Authenticate(h.Catalog.UpdateBook()))
	mux.HandleFunc("DELETE /api/v1/books/{id}", auth.Authenticate(h.Catalog.DeleteBook()))

	// Reviews
	mux.HandleFunc("GET /api/v1/books/{book_id}/reviews", auth.Authenticate(h.Review.ListReviews()))
	mux.HandleFunc("POST /api/v1/books/{book_id}/reviews", auth.Authenticate(h.Review.CreateReview()))
	mux.HandleFunc("GET /api/v1/books/{book_id}/reviews/{id}", auth.Authenticate(h.Review.GetReview()))
	mux.HandleFunc("PUT /api/v1/books/{book_id}/reviews/{id}", auth.Authenticate(h.Review.UpdateReview()))
	mux.HandleFunc("DELETE /api/v1/books/{book_id}/reviews/{id}", auth.Authenticate(h.Review.DeleteReview()))

	// Wishlist
	mux.HandleFunc("GET /api/v1/wishlist", auth.Authenticate(h.Wishlist.GetWishlist()))
	mux.HandleFunc("PUT /api/v1/wishlist", auth.Authenticate(h.Wishlist.ReplaceWishlist()))
	mux.HandleFunc("POST /api/v1/wishlist/add", auth.Authenticate(h.Wishlist.AddBook()))
	mux.HandleFunc("POST /api/v1/wishlist/remove", auth.Authenticate(h.Wishlist.RemoveBook()))

	// Cart
	mux.HandleFunc("GET /api/v1/cart", auth.Authenticate(h.Cart.GetCart()))
	mux.HandleFunc("PUT /api/v1/cart", auth.Authenticate(h.Cart.UpdateQuantity()))
	mux.HandleFunc("PUT /api/v1/cart/items", auth.Authenticate(h.Cart.UpdateQuantity()))
	mux.HandleFunc("POST /api/v1/cart/add_item", auth.Authenticate(h.Cart.AddItem()))
	mux.HandleFunc("POST /api/v1/cart/remove_item", auth.Authenticate(h.Cart.RemoveItem()))

	// Orders
	mux.HandleFunc("GET /api/v1/orders", auth.Authenticate(h.Order.ListOrders()))
	mux.HandleFunc("POST /api/v1/orders", auth.Authenticate(h.Order.PlaceOrder()))
	mux.HandleFunc("GET /api/v1/orders/{id}", auth.Authenticate(h.Order.GetOrder()))

	mux.HandleFunc("POST /api/v1/payment", auth.Authenticate(h.Payment.ProcessPayment()))
}
