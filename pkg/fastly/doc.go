// Package fastly provides types, interfaces, and helpers for working with the
// Fastly management API.
//
// # Overview
//
// The fastly package defines the domain types (Service, Version, Healthcheck
// and the logging endpoint models) together with the interfaces of the
// resource clients (ServicesClient, VersionsClient, HealthchecksClient and the
// generic LoggingClient). The concrete implementation lives in the
// fastlyclient package, which wires configuration, transport, caching and
// interceptors. Most consumers import fastlyclient to build a client and then
// use the interfaces defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/fastly/pkg/fastly"
//	  "github.com/fivetwenty-io/fastly/pkg/fastlyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := fastlyclient.New(ctx, &fastly.Config{
//	    APIKey: &fastly.APIKey{Key: "token"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  endpoint, err := cli.LoggingDigitalocean().Create(ctx, &fastly.CreateDigitaloceanInput{
//	    VersionTarget: fastly.VersionTarget{ServiceID: "SU1Z0isxPaozGVKXdv0eY", ServiceVersion: 1},
//	    Name:          fastly.String("test-log-endpoint"),
//	    BucketName:    fastly.String("my-logs"),
//	  })
//	  if err != nil { log.Fatal(err) }
//	  _ = endpoint
//	}
//
// # Request bodies
//
// Inputs use pointer fields. A nil field is left out of the form-encoded body,
// so an update only touches the fields that are set.
//
// # Errors
//
// Statuses 400 through 599 come back as *ResponseError, which carries the
// status, the raw body and an ErrorPayload. The payload is either structured,
// when the body is a Fastly error document, or opaque. Helpers such as
// IsNotFound, IsUnauthorized and IsRateLimited branch on common cases. Failed
// connections are reported as *TransportError and unreadable success bodies as
// *DecodeError.
//
// # Rate limits
//
// Every non-GET/HEAD response updates the client's RateLimit snapshot from
// the Fastly-RateLimit-Remaining and Fastly-RateLimit-Reset headers. Missing
// headers fall back to DefaultRateLimit and a reset of zero.
//
// # Interceptors and caching
//
// Config.Interceptors adds request/response hooks around every call. Built-in
// interceptors cover logging, client-side throttling, quota guarding, custom
// headers and circuit breaking. Config.Cache enables caching of GET responses
// in memory, NATS JetStream KV or Redis; writes invalidate cached reads of the
// same path.
package fastly
