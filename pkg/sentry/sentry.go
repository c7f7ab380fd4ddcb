package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long mains wait for buffered events on shutdown.
const FlushTime = 2 * time.Second

// Sentry is a small builder around hub selection: events are reported on the
// request-scoped hub when an echo context is attached, the global hub
// otherwise.
type Sentry struct {
	context echo.Context
	error   error
	message string
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithError(err error) *Sentry {
	s.error = err
	return s
}

func (s *Sentry) WithMessage(message string) *Sentry {
	s.message = message
	return s
}

func (s *Sentry) Capture() {
	hub := sentrygo.CurrentHub()
	if s.context != nil {
		if requestHub := sentryecho.GetHubFromContext(s.context); requestHub != nil {
			hub = requestHub
		}
	}

	if s.error != nil {
		hub.CaptureException(s.error)
	}
	if s.message != "" {
		hub.CaptureMessage(s.message)
	}
}
