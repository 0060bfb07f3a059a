// Package testkit runs the arc42 MCP server in-process for integration tests.
package testkit

import "errors"

// Service is started before a test and stopped after it.
// Start publishes properties such as URLs for the test to use.
type Service interface {
	Start() (map[string]any, error)
	Stop() error
}

// Env starts services in order and stops them in reverse order.
type Env struct {
	services []Service
	started  []Service
}

// NewEnv creates an environment over services.
func NewEnv(services ...Service) *Env {
	return &Env{services: services}
}

// Start starts every service and merges their properties. Later services
// override keys published by earlier ones. When a service fails, the
// services already started are stopped.
func (e *Env) Start() (map[string]any, error) {
	props := make(map[string]any)
	for _, s := range e.services {
		p, err := s.Start()
		if err != nil {
			return nil, errors.Join(err, e.Stop())
		}
		e.started = append(e.started, s)
		for k, v := range p {
			props[k] = v
		}
	}
	return props, nil
}

// Stop stops the started services and reports every failure.
func (e *Env) Stop() error {
	var errs []error
	for i := len(e.started) - 1; i >= 0; i-- {
		if err := e.started[i].Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	e.started = nil
	return errors.Join(errs...)
}
