package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"interpelli-viewer/internal/domain"

	"golang.org/x/time/rate"
)

// ErrNotFound means the catalog has no posting for the requested id.
var ErrNotFound = errors.New("posting not found")

// Client talks to the remote catalog API. It is read-only: the catalog
// owns all posting data, the viewer only queries it.
type Client struct {
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
}

func New(baseURL string, timeout time.Duration, limiter *rate.Limiter) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, vals url.Values, out any) error {
	u := c.baseURL + path
	if len(vals) > 0 {
		u += "?" + vals.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "InterpelliViewer/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog get %s: %w", path, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("catalog %s status %d", path, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog decode %s: %w", path, err)
	}
	return nil
}

// Search runs one listing query and returns the settled result set.
// Items is never nil; a response without items decodes to an empty slice.
func (c *Client) Search(ctx context.Context, q Query) (domain.ResultSet, error) {
	var rs domain.ResultSet
	if err := c.getJSON(ctx, "/interpelli", q.Values(), &rs); err != nil {
		return domain.ResultSet{}, err
	}
	if rs.Items == nil {
		rs.Items = []domain.Posting{}
	}
	return rs, nil
}

// Get fetches one posting by id. A body carrying an error marker is the
// catalog's way of saying not-found (it answers 200 for misses).
func (c *Client) Get(ctx context.Context, id int64) (domain.Posting, error) {
	var body struct {
		domain.Posting
		Error string `json:"error"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/interpelli/%d", id), nil, &body); err != nil {
		return domain.Posting{}, err
	}
	if body.Error != "" {
		return domain.Posting{}, ErrNotFound
	}
	return body.Posting, nil
}

// Meta rows. The catalog reports each distinct value with its posting count.

type CategoryCount struct {
	Categoria string `json:"categoria"`
	Count     int    `json:"count"`
}

type RegionCount struct {
	Regione string `json:"regione"`
	Count   int    `json:"count"`
}

type ProvinceCount struct {
	Provincia string `json:"provincia"`
	Count     int    `json:"count"`
}

type ComuneCount struct {
	Comune string `json:"comune"`
	Count  int    `json:"count"`
}

func (c *Client) Categories(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	if err := c.getJSON(ctx, "/meta/categorie", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Regions(ctx context.Context) ([]RegionCount, error) {
	var rows []RegionCount
	if err := c.getJSON(ctx, "/meta/regioni", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Provinces(ctx context.Context, regione string) ([]ProvinceCount, error) {
	v := url.Values{}
	if regione != "" {
		v.Set("regione", regione)
	}
	var rows []ProvinceCount
	if err := c.getJSON(ctx, "/meta/province", v, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) Municipalities(ctx context.Context, regione, provincia string) ([]ComuneCount, error) {
	v := url.Values{}
	if regione != "" {
		v.Set("regione", regione)
	}
	if provincia != "" {
		v.Set("provincia", provincia)
	}
	var rows []ComuneCount
	if err := c.getJSON(ctx, "/meta/comuni", v, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
