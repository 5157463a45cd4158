package components

import (
	"parking-booking/internal/handler"
	"parking-booking/internal/handler/api"
	"parking-booking/internal/handler/middleware"
	"parking-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewSlotHandler,
		api.NewAdminHandler,
		func(s *jwt.Service) middleware.TokenVerifier { return s },
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, s *api.SlotHandler, a *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Bookings: b, Slots: s, Admin: a}
		},
	),
	fx.Invoke(handler.NewRouter),
)
