package internal

// Handler declares routes on a router.
//
// Example:
//
//	type EncodeHandler struct {
//	    enc *mnes.Encoder
//	}
//
//	func (h *EncodeHandler) Routes(r internal.Router) {
//	    r.POST("/api/encode", h.encode)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
