// Package scholarship scrapes the award guide of the financial aid app and
// publishes each award as a flat Scholarship record.
package scholarship

import (
	"context"

	"github.com/ka2n/ufvdata/api"
	"github.com/ka2n/ufvdata/api/session"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
)

// Scraper fetches awards through a client for the financial aid app.
type Scraper struct {
	Client *api.Client
}

// Scrape fetches the award list and then the details of every award, one
// request at a time, in list order.
func (s *Scraper) Scrape(ctx context.Context) ([]Raw, error) {
	cookies, err := s.startSession(ctx)
	if err != nil {
		return nil, err
	}

	list, _, err := api.GetJSON[awardList](ctx, s.Client, api.Request{
		Name:    "award list",
		Path:    "/ssb/awardList/getAwardList",
		Cookies: cookies,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Fetched award list", "awards", len(list.Result))

	raws := make([]Raw, 0, len(list.Result))
	for i, award := range list.Result {
		if err := ctx.Err(); err != nil {
			return nil, failure.Wrap(err)
		}
		details, _, err := api.GetJSON[Details](ctx, s.Client, api.Request{
			Name:    "award details",
			Path:    "/ssb/awardDetails/getAwardDetails",
			Query:   map[string]string{"code": award.Code},
			Cookies: cookies,
		})
		if err != nil {
			return nil, failure.Wrap(err, failure.Context{"code": award.Code})
		}
		log.Info("Fetched award details", "count", i+1, "code", award.Code)
		raws = append(raws, Raw{Award: award, Details: details})
	}
	return raws, nil
}

// startSession opens the award guide, which hands out the cookies the
// other award endpoints require.
func (s *Scraper) startSession(ctx context.Context) (session.Cookies, error) {
	resp, err := s.Client.Get(ctx, api.Request{
		Name: "award guide",
		Verb: "open",
		Path: "/ssb/awardGuide",
	})
	if err != nil {
		return nil, err
	}
	log.Info("Fetched award guide")

	cookies, ok := session.Extract(resp.Header())
	if !ok {
		return nil, failure.New(api.ErrNoSession,
			failure.Message("Award guide did not set session cookies"),
		)
	}
	return cookies, nil
}
