// Package hal renders response bodies: application/hal+json on success and
// RFC 7807 application/problem+json on error.
package hal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MIMEHalJSON     = "application/hal+json"
	MIMEProblemJSON = "application/problem+json"
)

// Link is a single hypermedia affordance.
type Link struct {
	Href string `json:"href"`
}

// Links is the value of the "_links" member of a resource.
type Links map[string]Link

// Problem is an RFC 7807 error document.
type Problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// NewProblem returns a problem for status with the standard title.
func NewProblem(status int, detail string) *Problem {
	return &Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// WithErrors attaches field level errors to the problem.
func (p *Problem) WithErrors(errs map[string]string) *Problem {
	p.Errors = errs
	return p
}

// Write sends body as a hal+json document.
func Write(c *fiber.Ctx, status int, body interface{}) error {
	return send(c, status, MIMEHalJSON, body)
}

// WriteProblem sends p as a problem+json document.
func WriteProblem(c *fiber.Ctx, p *Problem) error {
	return send(c, p.Status, MIMEProblemJSON, p)
}

func send(c *fiber.Ctx, status int, contentType string, body interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(status).Send(raw)
}

// ErrorHandler renders errors escaping the handlers, including unmatched
// routes and recovered panics, as problem documents.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := "An internal error occurred."
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			detail = fe.Message
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}
		return WriteProblem(c, NewProblem(status, detail))
	}
}
