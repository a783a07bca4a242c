// Package timetable scrapes the course sections offered in the most recent
// terms from the registration app's class search.
package timetable

import (
	"context"
	"strconv"

	"github.com/ka2n/ufvdata/api"
	"github.com/ka2n/ufvdata/api/paginate"
	"github.com/ka2n/ufvdata/api/schema"
	"github.com/ka2n/ufvdata/api/session"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Scraper fetches timetables through a client for the registration app.
type Scraper struct {
	Client *api.Client
	// PageSize overrides paginate.PageSize when non-zero.
	PageSize int
}

// Terms returns every term class search offers. An empty list is a
// violation.
func (s *Scraper) Terms(ctx context.Context) ([]Term, error) {
	terms, _, err := api.GetJSON[[]Term](ctx, s.Client, api.Request{
		Name:  "terms",
		Path:  "/ssb/classSearch/getTerms",
		Query: map[string]string{"offset": "0", "max": "0"},
	})
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		violations := schema.Violations{{Message: "must contain at least 1 items"}}
		log.Error("terms failed validation", "violations", violations)
		return nil, failure.Translate(violations, schema.ErrViolation,
			failure.Message("terms failed validation"),
		)
	}
	log.Info("Fetched terms", "count", len(terms))
	return terms, nil
}

// Scrape fetches every section offered in term and reshapes them into a
// Timetable. Requests run sequentially; any failure aborts the term.
func (s *Scraper) Scrape(ctx context.Context, term Term) (Timetable, error) {
	cookies, err := s.selectTerm(ctx, term)
	if err != nil {
		return Timetable{}, err
	}

	f := paginate.Fetcher[Section]{
		Count: func(ctx context.Context) (int, error) {
			return s.count(ctx, term, cookies)
		},
		Page: func(ctx context.Context, offset int) ([]Section, error) {
			return s.page(ctx, term, cookies, offset)
		},
		Size: s.pageSize(),
	}
	sections, err := f.Fetch(ctx)
	if err != nil {
		return Timetable{}, failure.Wrap(err, failure.Context{"term": term.Code})
	}
	if len(sections) == 0 {
		log.Warn("No courses found", "term", term.Description)
	}

	tt := Format(term, sections)
	if err := api.Check("timetable", tt, failure.Context{"term": term.Code}); err != nil {
		return Timetable{}, err
	}
	return tt, nil
}

// Format publishes sections as courses of term, dropping instructor
// Banner IDs.
func Format(term Term, sections []Section) Timetable {
	courses := lo.Map(sections, func(sec Section, _ int) Course {
		faculty := lo.Map(sec.Faculty, func(f SectionInstructor, _ int) Instructor {
			return f.Instructor
		})
		sec.Faculty = nil
		return Course{Section: sec, Faculty: faculty}
	})
	return Timetable{Term: term.Description, Courses: courses}
}

// selectTerm makes term the session's search term and returns the
// session cookies the search requests need.
func (s *Scraper) selectTerm(ctx context.Context, term Term) (session.Cookies, error) {
	_, resp, err := api.GetJSON[setTermResponse](ctx, s.Client, api.Request{
		Name:  "term " + term.Code,
		Verb:  "select",
		Path:  "/ssb/term/search",
		Query: map[string]string{"term": term.Code},
	})
	if err != nil {
		return nil, err
	}

	cookies, ok := session.Extract(resp.Header())
	if !ok {
		return nil, failure.New(api.ErrNoSession,
			failure.Message("Selecting a term did not set session cookies"),
			failure.Context{"term": term.Code},
		)
	}
	return cookies, nil
}

func (s *Scraper) count(ctx context.Context, term Term, cookies session.Cookies) (int, error) {
	res, _, err := api.GetJSON[SearchCount](ctx, s.Client, s.searchRequest("course count", term, cookies, -1))
	if err != nil {
		return 0, err
	}
	log.Info("Counted courses", "term", term.Code, "total", res.TotalCount)
	return res.TotalCount, nil
}

func (s *Scraper) page(ctx context.Context, term Term, cookies session.Cookies, offset int) ([]Section, error) {
	res, _, err := api.GetJSON[SearchPage](ctx, s.Client, s.searchRequest("courses", term, cookies, offset))
	if err != nil {
		return nil, err
	}
	log.Info("Fetched courses", "term", term.Code, "offset", offset, "count", len(res.Data))
	return res.Data, nil
}

func (s *Scraper) searchRequest(name string, term Term, cookies session.Cookies, offset int) api.Request {
	return api.Request{
		Name: name,
		Path: "/ssb/searchResults/searchResults",
		Query: map[string]string{
			"pageMaxSize": strconv.Itoa(s.pageSize()),
			"txt_term":    term.Code,
			"pageOffset":  strconv.Itoa(offset),
		},
		Cookies: cookies,
	}
}

func (s *Scraper) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return paginate.PageSize
}
