package fastly

import (
	"context"
)

// ServicesClient provides access to services.
type ServicesClient interface {
	List(ctx context.Context) ([]*Service, error)
	Get(ctx context.Context, serviceID string) (*Service, error)
	Search(ctx context.Context, name string) (*Service, error)
}

// VersionsClient provides access to service versions.
type VersionsClient interface {
	List(ctx context.Context, serviceID string) ([]*Version, error)
	Get(ctx context.Context, target VersionTarget) (*Version, error)
	Clone(ctx context.Context, target VersionTarget) (*Version, error)
	Activate(ctx context.Context, target VersionTarget) (*Version, error)
	Deactivate(ctx context.Context, target VersionTarget) (*Version, error)
	Lock(ctx context.Context, target VersionTarget) (*Version, error)
}

// HealthchecksClient provides access to healthchecks of a service version.
type HealthchecksClient interface {
	List(ctx context.Context, target VersionTarget) ([]*Healthcheck, error)
	Get(ctx context.Context, target EndpointTarget) (*Healthcheck, error)
	Create(ctx context.Context, input *CreateHealthcheckInput) (*Healthcheck, error)
	Update(ctx context.Context, input *UpdateHealthcheckInput) (*Healthcheck, error)
	Delete(ctx context.Context, target EndpointTarget) (*DeleteResponse, error)
}

// LoggingClient provides CRUD access to one logging endpoint provider.
// T is the endpoint model, C the create input and U the update input.
type LoggingClient[T any, C TargetedInput, U EndpointInput] interface {
	List(ctx context.Context, target VersionTarget) ([]*T, error)
	Get(ctx context.Context, target EndpointTarget) (*T, error)
	Create(ctx context.Context, input C) (*T, error)
	Update(ctx context.Context, input U) (*T, error)
	Delete(ctx context.Context, target EndpointTarget) (*DeleteResponse, error)
}

// DigitaloceanClient manages DigitalOcean Spaces logging endpoints.
type DigitaloceanClient = LoggingClient[LoggingDigitalocean, *CreateDigitaloceanInput, *UpdateDigitaloceanInput]

// S3Client manages Amazon S3 logging endpoints.
type S3Client = LoggingClient[LoggingS3, *CreateS3Input, *UpdateS3Input]

// HTTPSClient manages HTTPS logging endpoints.
type HTTPSClient = LoggingClient[LoggingHTTPS, *CreateHTTPSInput, *UpdateHTTPSInput]

// SyslogClient manages syslog logging endpoints.
type SyslogClient = LoggingClient[LoggingSyslog, *CreateSyslogInput, *UpdateSyslogInput]

// LoggingClients provides access to the logging endpoint clients.
type LoggingClients interface {
	LoggingDigitalocean() DigitaloceanClient
	LoggingS3() S3Client
	LoggingHTTPS() HTTPSClient
	LoggingSyslog() SyslogClient
}

// Client is the Fastly management API client.
type Client interface {
	LoggingClients

	Services() ServicesClient
	Versions() VersionsClient
	Healthchecks() HealthchecksClient

	// RateLimit returns a copy of the quota reported by the last write call.
	RateLimit() RateLimit
}
