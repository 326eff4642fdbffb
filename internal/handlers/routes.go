package handlers

import "github.com/gofiber/fiber/v2"

// Route is one entry of the explicit route table: the handlers run in order
// for requests matching Method and Path.
type Route struct {
	Method   string
	Path     string
	Handlers []fiber.Handler
}

// Guards are the access checks a handler attaches to its routes.
type Guards struct {
	Authenticated fiber.Handler
	Admin         fiber.Handler
}

// chain prepends middleware to handler, skipping nil entries.
func chain(handler fiber.Handler, middleware ...fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(middleware)+1)
	for _, m := range middleware {
		if m != nil {
			handlers = append(handlers, m)
		}
	}
	return append(handlers, handler)
}
