package server

import (
	"strconv"

	"destination-sync/core/fault"

	"github.com/gofiber/fiber/v2"
)

// RetryAfterSeconds is advertised on responses for retryable faults.
const RetryAfterSeconds = 30

// Problem is an RFC 7807 problem body.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
	// Code is the fault code, when the error is a fault.
	Code string `json:"code,omitempty"`
	// Kind is the fault kind, when the error is a fault.
	Kind string `json:"kind,omitempty"`
	// RemoteStatus is the destination API status that caused the fault.
	RemoteStatus int `json:"remote_status,omitempty"`
}

// ProblemFor maps an error to a problem body.
//
// Validation faults map to 400, fatal faults to 422 and retryable faults to
// 503. Anything else is an internal error.
func ProblemFor(err error) Problem {
	f := fault.As(err)
	if f == nil {
		return Problem{
			Title:  "Internal Server Error",
			Status: fiber.StatusInternalServerError,
			Detail: err.Error(),
		}
	}

	p := Problem{
		Type:         "urn:destination-sync:fault:" + string(f.Kind),
		Detail:       f.Message,
		Code:         f.Code,
		Kind:         string(f.Kind),
		RemoteStatus: f.Status,
	}
	switch f.Kind {
	case fault.KindValidation:
		p.Title, p.Status = "Invalid Payload", fiber.StatusBadRequest
	case fault.KindFatal:
		p.Title, p.Status = "Destination Rejected Request", fiber.StatusUnprocessableEntity
	case fault.KindRetryable:
		p.Title, p.Status = "Destination Temporarily Unavailable", fiber.StatusServiceUnavailable
	default:
		p.Title, p.Status = "Internal Server Error", fiber.StatusInternalServerError
	}
	return p
}

// WriteProblem writes err as an application/problem+json response.
func WriteProblem(c *fiber.Ctx, err error) error {
	p := ProblemFor(err)
	if p.Kind == string(fault.KindRetryable) {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(RetryAfterSeconds))
	}
	c.Status(p.Status)
	if err := c.JSON(p); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return nil
}
