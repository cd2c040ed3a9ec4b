// Package advisory matches packages against the advisories osv.dev publishes
// for them.
package advisory

import (
	"context"
	"errors"
	"time"

	"github.com/ossf/osv-schema/bindings/go/osvschema"
	"golang.org/x/sync/errgroup"
	"osv.dev/bindings/go/osvdev"
	"osv.dev/bindings/go/osvdevexperimental"

	"github.com/purl-tools/purlkit/internal/version"
	"github.com/purl-tools/purlkit/purl"
)

const maxConcurrentRequests = 1000

// Matcher queries the osv.dev API for the advisories affecting packages,
// batching the initial query and hydrating the matched IDs concurrently.
type Matcher struct {
	Client osvdev.OSVClient
	// InitialQueryTimeout allows you to set a timeout specifically for the initial paging query
	// If timeout runs out, whatever pages that has been successfully queried within the timeout will
	// still return fully hydrated.
	InitialQueryTimeout time.Duration
}

// NewMatcher returns a Matcher backed by the public osv.dev API.
func NewMatcher() *Matcher {
	client := *osvdev.DefaultClient()
	client.Config.UserAgent = "purlkit/" + version.Version

	return &Matcher{Client: client}
}

// MatchAdvisories returns the advisories affecting each purl, in input order.
// A purl without a version matches every advisory recorded against the
// package.
func (matcher *Matcher) MatchAdvisories(ctx context.Context, purls []purl.PackageURL) ([][]*osvschema.Vulnerability, error) {
	var batchResp *osvdev.BatchedResponse
	deadlineExceeded := false

	{
		var err error

		queries := purlsToQueries(purls)
		// If there is a timeout for the initial query, set an additional context deadline here.
		if matcher.InitialQueryTimeout > 0 {
			batchQueryCtx, cancelFunc := context.WithDeadline(ctx, time.Now().Add(matcher.InitialQueryTimeout))
			batchResp, err = osvdevexperimental.BatchQueryPaging(batchQueryCtx, &matcher.Client, queries)
			cancelFunc()
		} else {
			batchResp, err = osvdevexperimental.BatchQueryPaging(ctx, &matcher.Client, queries)
		}

		if err != nil {
			// Deadline being exceeded is likely caused by a long paging time
			// if that's the case, we should return what we already got, and
			// then let the caller know it is not all the results. There is
			// nothing to return when even the initial query never completed.
			if errors.Is(err, context.DeadlineExceeded) && batchResp != nil {
				deadlineExceeded = true
			} else {
				return nil, err
			}
		}
	}

	advisories := make([][]*osvschema.Vulnerability, len(batchResp.Results))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)

	for batchIdx, resp := range batchResp.Results {
		advisories[batchIdx] = make([]*osvschema.Vulnerability, len(resp.Vulns))
		for resultIdx, vuln := range resp.Vulns {
			g.Go(func() error {
				// exit early if another hydration request has already failed
				// results are thrown away later, so avoid needless work
				if ctx.Err() != nil {
					return nil //nolint:nilerr // this value doesn't matter to errgroup.Wait()
				}
				vuln, err := matcher.Client.GetVulnByID(ctx, vuln.ID)
				if err != nil {
					return err
				}
				advisories[batchIdx][resultIdx] = vuln

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if deadlineExceeded {
		return advisories, context.DeadlineExceeded
	}

	return advisories, nil
}

// purlToQuery converts p to an osv.dev query. The API wants the version as a
// separate field and will not match a purl carrying qualifiers or a subpath,
// so those are stripped from the query string.
func purlToQuery(p purl.PackageURL) *osvdev.Query {
	stripped := p
	stripped.Version = ""
	stripped.Qualifiers = nil
	stripped.Subpath = ""

	return &osvdev.Query{
		Package: osvdev.Package{
			PURL: stripped.String(),
		},
		Version: p.Version,
	}
}

func purlsToQueries(purls []purl.PackageURL) []*osvdev.Query {
	queries := make([]*osvdev.Query, len(purls))

	for i, p := range purls {
		queries[i] = purlToQuery(p)
	}

	return queries
}
