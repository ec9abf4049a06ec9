package routes

import (
	"net/http"

	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/handlers"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/api/middleware"
	"github.com/Aryaman129/play-nest-nagpur-sub001/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	turfHandler         *handlers.TurfHandler
	bookingHandler      *handlers.BookingHandler
	paymentHandler      *handlers.PaymentHandler
	receiptHandler      *handlers.ReceiptHandler
	notificationHandler *handlers.NotificationHandler
	authHandler         *handlers.AuthHandler
	ownerHandler        *handlers.OwnerHandler
	geolocationHandler  *handlers.GeolocationHandler
	sseHandler          *handlers.SSEHandler

	authMiddleware  *middleware.AuthMiddleware
	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	turfHandler *handlers.TurfHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	receiptHandler *handlers.ReceiptHandler,
	notificationHandler *handlers.NotificationHandler,
	authHandler *handlers.AuthHandler,
	ownerHandler *handlers.OwnerHandler,
	geolocationHandler *handlers.GeolocationHandler,
	sseHandler *handlers.SSEHandler,
	authMiddleware *middleware.AuthMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		turfHandler:         turfHandler,
		bookingHandler:      bookingHandler,
		paymentHandler:      paymentHandler,
		receiptHandler:      receiptHandler,
		notificationHandler: notificationHandler,
		authHandler:         authHandler,
		ownerHandler:        ownerHandler,
		geolocationHandler:  geolocationHandler,
		sseHandler:          sseHandler,
		authMiddleware:      authMiddleware,
		cacheMiddleware:     cacheMiddleware,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("GET /api/auth/me", r.authMiddleware.RequireAuth(r.authHandler.Me))

	// Turf endpoints
	r.mux.HandleFunc("GET /api/turfs", r.turfHandler.ListTurfs)
	r.mux.HandleFunc("GET /api/turfs/search", r.turfHandler.SearchTurfs)
	r.mux.HandleFunc("GET /api/turfs/{id}", r.turfHandler.GetTurf)
	r.mux.HandleFunc("POST /api/turfs", r.authMiddleware.RequireRole("owner", r.turfHandler.CreateTurf))
	r.mux.HandleFunc("PATCH /api/turfs/{id}", r.authMiddleware.RequireRole("owner", r.turfHandler.UpdateTurf))
	r.mux.HandleFunc("DELETE /api/turfs/{id}", r.authMiddleware.RequireRole("owner", r.turfHandler.DeleteTurf))

	// Slot endpoints
	r.mux.HandleFunc("GET /api/turfs/{id}/availability", r.bookingHandler.GetAvailability)
	r.mux.HandleFunc("POST /api/turfs/{id}/slots/{slotId}/select", r.bookingHandler.SelectSlot)
	r.mux.HandleFunc("POST /api/turfs/{id}/slots/{slotId}/waitlist", r.authMiddleware.RequireAuth(r.bookingHandler.JoinWaitlist))

	// Booking endpoints
	r.mux.HandleFunc("POST /api/bookings", r.authMiddleware.RequireAuth(r.bookingHandler.CreateBooking))
	r.mux.HandleFunc("GET /api/bookings", r.authMiddleware.RequireAuth(r.bookingHandler.ListMyBookings))
	r.mux.HandleFunc("GET /api/bookings/{id}", r.authMiddleware.RequireAuth(r.bookingHandler.GetBooking))
	r.mux.HandleFunc("POST /api/bookings/{id}/cancel", r.authMiddleware.RequireAuth(r.bookingHandler.CancelBooking))

	// Payment endpoints
	r.mux.HandleFunc("POST /api/bookings/{id}/payment", r.authMiddleware.RequireAuth(r.paymentHandler.StartPayment))
	r.mux.HandleFunc("GET /api/bookings/{id}/payment", r.authMiddleware.RequireAuth(r.paymentHandler.GetPayment))
	r.mux.HandleFunc("POST /api/bookings/{id}/payment/pay", r.authMiddleware.RequireAuth(r.paymentHandler.Pay))
	r.mux.HandleFunc("POST /api/bookings/{id}/payment/retry", r.authMiddleware.RequireAuth(r.paymentHandler.RetryPayment))

	// Receipt endpoints
	r.mux.HandleFunc("GET /api/bookings/{id}/receipt", r.authMiddleware.RequireAuth(r.receiptHandler.GetReceipt))
	r.mux.HandleFunc("GET /api/bookings/{id}/receipt/download", r.authMiddleware.RequireAuth(r.receiptHandler.DownloadReceipt))

	// Notification endpoints
	r.mux.HandleFunc("GET /api/notifications", r.authMiddleware.RequireAuth(r.notificationHandler.ListNotifications))
	r.mux.HandleFunc("POST /api/notifications/{id}/read", r.authMiddleware.RequireAuth(r.notificationHandler.MarkRead))
	r.mux.HandleFunc("POST /api/notifications/read-all", r.authMiddleware.RequireAuth(r.notificationHandler.MarkAllRead))
	r.mux.HandleFunc("DELETE /api/notifications/{id}", r.authMiddleware.RequireAuth(r.notificationHandler.DeleteNotification))

	// Owner dashboard endpoints
	r.mux.HandleFunc("GET /api/owner/dashboard", r.authMiddleware.RequireRole("owner", r.ownerHandler.GetDashboard))
	r.mux.HandleFunc("GET /api/owner/turfs/{id}/bookings", r.authMiddleware.RequireRole("owner", r.ownerHandler.GetTurfBookings))

	// Geolocation endpoints
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)

	// Real-time streams
	r.mux.HandleFunc("GET /api/stream/turfs/{id}", r.sseHandler.StreamTurfUpdates)
	r.mux.HandleFunc("GET /api/stream/me", r.authMiddleware.RequireAuth(r.sseHandler.StreamUserUpdates))

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
