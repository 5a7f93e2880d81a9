package usecase

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/a11y-scraper/internal/entity"
	"github.com/user/a11y-scraper/internal/repository"
	"github.com/user/a11y-scraper/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

// fakeFetcher serves canned HTML per URL and records every fetch.
type fakeFetcher struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.pages[url], nil
}

type scrapeCall struct {
	name   string
	fields entity.StatementFields
	status string
}

type statusCall struct {
	name   string
	status string
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	rows     map[string]*entity.Product
	scrapes  []scrapeCall
	statuses []statusCall
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{rows: map[string]*entity.Product{}}
	for _, p := range products {
		r.rows[p.Name] = p
	}
	return r
}

func (r *fakeProductRepo) Init(context.Context) error { return nil }

func (r *fakeProductRepo) Upsert(_ context.Context, p *entity.Product) error {
	copied := *p
	r.rows[p.Name] = &copied
	return nil
}

func (r *fakeProductRepo) SaveScrape(_ context.Context, name string, fields entity.StatementFields, status string, fetchedAt time.Time) error {
	r.scrapes = append(r.scrapes, scrapeCall{name, fields, status})
	if p, ok := r.rows[name]; ok {
		p.StatementFields = fields
		p.Status = status
		p.FetchedAt = &fetchedAt
	}
	return nil
}

func (r *fakeProductRepo) SetStatus(_ context.Context, name string, status string, fetchedAt time.Time) error {
	r.statuses = append(r.statuses, statusCall{name, status})
	if p, ok := r.rows[name]; ok {
		p.Status = status
		p.FetchedAt = &fetchedAt
	}
	return nil
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*entity.Product, error) {
	p, ok := r.rows[name]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByURL(_ context.Context, url string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.rows {
		if p.URL == url {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProductRepo) ListInvalid(context.Context) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeProductRepo) Report(context.Context) (*entity.ScrapeReport, error) {
	report := &entity.ScrapeReport{TotalProducts: int64(len(r.rows))}
	for _, p := range r.rows {
		if p.LastReview != "" {
			report.LastReview++
		}
		if p.WCAG != "" {
			report.WCAG++
		}
		if p.ComplianceLevel != "" {
			report.ComplianceLevel++
		}
		if p.Status == entity.StatusSuccess {
			report.SuccessfulScrapes++
		}
	}
	return report, nil
}

// fakeQueue is an in-memory FIFO that mimics the redis adapter's empty-queue
// sentinel.
type fakeQueue struct {
	items []string
}

func (q *fakeQueue) Push(_ context.Context, url string) error {
	q.items = append(q.items, url)
	return nil
}

func (q *fakeQueue) Pop(context.Context) (string, error) {
	if len(q.items) == 0 {
		return "", redis.Nil
	}
	url := q.items[0]
	q.items = q.items[1:]
	return url, nil
}

func (q *fakeQueue) Size(context.Context) (int64, error) {
	return int64(len(q.items)), nil
}

// fakeVisited is an in-memory visited set; expiry is ignored.
type fakeVisited struct {
	seen map[string]bool
}

func newFakeVisited() *fakeVisited { return &fakeVisited{seen: map[string]bool{}} }

func (v *fakeVisited) MarkVisited(_ context.Context, url string, _ time.Duration) error {
	v.seen[url] = true
	return nil
}

func (v *fakeVisited) IsVisited(_ context.Context, url string) (bool, error) {
	return v.seen[url], nil
}

func (v *fakeVisited) RemoveVisited(_ context.Context, url string) error {
	delete(v.seen, url)
	return nil
}
