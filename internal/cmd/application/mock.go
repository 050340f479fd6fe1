package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bankrot/internal/debtors"
	"github.com/agentstation/bankrot/internal/harvest"
	"github.com/agentstation/bankrot/internal/sources/fedresurs"
	"github.com/agentstation/bankrot/internal/transport"
	"github.com/agentstation/bankrot/pkg/logging"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	srv := httptest.NewServer(handler)
//	mock := &application.Mock{
//	    ClientsFunc: func(opts ...transport.Option) (*transport.Client, *transport.Client) {
//	        return transport.New(srv.URL, opts...), transport.New(srv.URL, opts...)
//	    },
//	}
//	cmd := inspect.NewCommand(mock)
type Mock struct {
	ClientsFunc        func(opts ...transport.Option) (list, card *transport.Client)
	HarvestOptionsFunc func() []harvest.Option
	BuildOptionsFunc   func() debtors.Options
	OutputDirFunc      func() string
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// Clients returns clients using the mock function or clients for the
// production hosts.
func (m *Mock) Clients(opts ...transport.Option) (list, card *transport.Client) {
	if m.ClientsFunc != nil {
		return m.ClientsFunc(opts...)
	}
	return transport.New(fedresurs.ListBaseURL, opts...), transport.New(fedresurs.CardBaseURL, opts...)
}

// HarvestOptions returns options using the mock function or none.
func (m *Mock) HarvestOptions() []harvest.Option {
	if m.HarvestOptionsFunc != nil {
		return m.HarvestOptionsFunc()
	}
	return nil
}

// BuildOptions returns options using the mock function or the defaults.
func (m *Mock) BuildOptions() debtors.Options {
	if m.BuildOptionsFunc != nil {
		return m.BuildOptionsFunc()
	}
	return debtors.DefaultOptions()
}

// OutputDir returns the directory using the mock function or ".".
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return "."
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
