package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"
)

const maxCandidates = 5

type serviceNames []*fastly.Service

func (s serviceNames) String(i int) string { return strings.ToLower(s[i].Name) }
func (s serviceNames) Len() int            { return len(s) }

// matchService picks the service addressed by query: an exact ID, then an
// exact case-insensitive name, then the single best fuzzy name match.
func matchService(query string, services []*fastly.Service) (*fastly.Service, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, constants.ErrEmptyServiceQuery
	}

	for _, service := range services {
		if service.ID == query {
			return service, nil
		}
	}

	for _, service := range services {
		if strings.EqualFold(service.Name, query) {
			return service, nil
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), serviceNames(services))
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", constants.ErrServiceNotFound, query)
	}

	if len(results) > 1 && results[0].Score == results[1].Score {
		if len(results) > maxCandidates {
			results = results[:maxCandidates]
		}

		candidates := make([]string, 0, len(results))
		for _, result := range results {
			service := services[result.Index]
			candidates = append(candidates, fmt.Sprintf("%s (%s)", service.Name, service.ID))
		}

		return nil, fmt.Errorf("%w: %q matches %s", constants.ErrAmbiguousService, query, strings.Join(candidates, ", "))
	}

	return services[results[0].Index], nil
}

// resolveService looks up the service named by --service.
func resolveService(ctx context.Context, client fastly.Client) (*fastly.Service, error) {
	query := viper.GetString(keyServiceID)
	if strings.TrimSpace(query) == "" {
		return nil, constants.ErrServiceRequired
	}

	services, err := client.Services().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return matchService(query, services)
}

// serviceTarget resolves --service and the version to work on. versionArg,
// when not empty, takes precedence over --version. Without either the active
// version is used.
func serviceTarget(ctx context.Context, client fastly.Client, versionArg string) (fastly.VersionTarget, error) {
	service, err := resolveService(ctx, client)
	if err != nil {
		return fastly.VersionTarget{}, err
	}

	number := viper.GetInt(keyServiceVersion)

	if versionArg != "" {
		number, err = strconv.Atoi(versionArg)
		if err != nil || number <= 0 {
			return fastly.VersionTarget{}, fmt.Errorf("invalid version %q: %w", versionArg, constants.ErrServiceVersionRequired)
		}
	}

	if number <= 0 {
		number = service.ActiveVersion()
	}

	if number <= 0 {
		return fastly.VersionTarget{}, constants.ErrServiceVersionRequired
	}

	return fastly.VersionTarget{ServiceID: service.ID, ServiceVersion: number}, nil
}

func endpointTarget(target fastly.VersionTarget, name string) fastly.EndpointTarget {
	return fastly.EndpointTarget{
		ServiceID:      target.ServiceID,
		ServiceVersion: target.ServiceVersion,
		Name:           name,
	}
}
