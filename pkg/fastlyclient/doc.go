// Package fastlyclient provides the primary entry point for constructing a
// Fastly management API client that implements the fastly.Client interface.
//
// It layers configuration, the HTTP executor, rate-limit tracking and the
// optional interceptors (quota guard, circuit breaker, metrics, cache) on top
// of the resource interfaces and types defined in the fastly package.
//
// Quick start
//
//	import (
//	  "context"
//	  "fmt"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/fastly/pkg/fastly"
//	  "github.com/fivetwenty-io/fastly/pkg/fastlyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := fastlyclient.NewWithToken(ctx, os.Getenv("FASTLY_API_TOKEN"))
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full configuration:
//	  cli, err = fastlyclient.New(ctx, &fastly.Config{
//	    BaseURL:    "api.fastly.com", // "https://" is added
//	    APIKey:     &fastly.APIKey{Key: os.Getenv("FASTLY_API_TOKEN")},
//	    GuardQuota: true,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  hc, err := cli.Healthchecks().Create(ctx, &fastly.CreateHealthcheckInput{
//	    VersionTarget: fastly.VersionTarget{ServiceID: "SU1Z0isxPaozGVKXdv0eY", ServiceVersion: 1},
//	    Name:          fastly.String("origin-check"),
//	    Headers:       []string{"Host: example.com"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  fmt.Println(hc.Name, cli.RateLimit().Remaining)
//	}
package fastlyclient
