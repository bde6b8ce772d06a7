package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"time"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/domain"
	"warships-tracker/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	endpointAccount        = "account"
	endpointClanMembership = "clan_membership"
	endpointShips          = "ships"
	endpointShipsPvP       = "ships_pvp"
	endpointClanInfo       = "clan_info"
	endpointVersion        = "version"
)

const versionQuery = `[{"query":"query Version {\n  version\n}"}]`

// VortexClient talks to the regional game API and the clan portal.
// Transport timeouts live here; callers get either a result or an error
// wrapping domain.ErrRemoteUnavailable.
type VortexClient struct {
	client    *fasthttp.Client
	vortexURL map[domain.Region]string
	clanURL   map[domain.Region]string
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewVortexClient(m *metrics.Metrics, logger zerolog.Logger) *VortexClient {
	client := &fasthttp.Client{
		MaxConnsPerHost:     constants.RemoteMaxConnsPerHost,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: constants.RemoteMaxIdleConnDuration,
	}
	return newVortexClient(client, regionURLs(constants.VortexBaseURLs), regionURLs(constants.ClanBaseURLs), m, logger)
}

func newVortexClient(client *fasthttp.Client, vortexURL, clanURL map[domain.Region]string, m *metrics.Metrics, logger zerolog.Logger) *VortexClient {
	return &VortexClient{
		client:    client,
		vortexURL: vortexURL,
		clanURL:   clanURL,
		metrics:   m,
		logger:    logger,
	}
}

func regionURLs(byID map[int]string) map[domain.Region]string {
	out := make(map[domain.Region]string, len(byID))
	for id, u := range byID {
		out[domain.Region(id)] = u
	}
	return out
}

func (c *VortexClient) base(urls map[domain.Region]string, region domain.Region) (string, error) {
	u, ok := urls[region]
	if !ok {
		return "", fmt.Errorf("%w: %d", domain.ErrInvalidRegion, int(region))
	}
	return u, nil
}

func withToken(u, token string) string {
	if token == "" {
		return u
	}
	return u + "?ac=" + url.QueryEscape(token)
}

func (c *VortexClient) GetAccount(ctx context.Context, accountID int64, region domain.Region, token string) (*AccountResult, error) {
	base, err := c.base(c.vortexURL, region)
	if err != nil {
		return nil, err
	}
	u := withToken(fmt.Sprintf("%s/api/accounts/%d/", base, accountID), token)

	resp, found, err := doRequest[envelope[map[string]AccountData]](ctx, c, endpointAccount, u, nil, fasthttp.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if !found {
		return &AccountResult{NotFound: true}, nil
	}
	account, ok := resp.Data[strconv.FormatInt(accountID, 10)]
	if !ok {
		return &AccountResult{NotFound: true}, nil
	}
	return &AccountResult{Account: account}, nil
}

func (c *VortexClient) GetClanMembership(ctx context.Context, accountID int64, region domain.Region) (*ClanMembershipResult, error) {
	base, err := c.base(c.vortexURL, region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/accounts/%d/clans/", base, accountID)

	resp, found, err := doRequest[envelope[ClanMembershipResult]](ctx, c, endpointClanMembership, u, nil, fasthttp.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if !found {
		return &ClanMembershipResult{}, nil
	}
	return &resp.Data, nil
}

func (c *VortexClient) GetShips(ctx context.Context, accountID int64, region domain.Region, token string) (*ShipsResult, error) {
	return c.getShips(ctx, endpointShips, "ships/", accountID, region, token)
}

func (c *VortexClient) GetPvPShips(ctx context.Context, accountID int64, region domain.Region, token string) (*ShipsResult, error) {
	return c.getShips(ctx, endpointShipsPvP, "ships/pvp/", accountID, region, token)
}

func (c *VortexClient) getShips(ctx context.Context, endpoint, path string, accountID int64, region domain.Region, token string) (*ShipsResult, error) {
	base, err := c.base(c.vortexURL, region)
	if err != nil {
		return nil, err
	}
	u := withToken(fmt.Sprintf("%s/api/accounts/%d/%s", base, accountID, path), token)

	resp, found, err := doRequest[envelope[map[string]accountEntry[map[string]ShipModes]]](ctx, c, endpoint, u, nil, fasthttp.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if !found {
		return &ShipsResult{NotFound: true}, nil
	}
	entry, ok := resp.Data[strconv.FormatInt(accountID, 10)]
	if !ok {
		return &ShipsResult{NotFound: true}, nil
	}
	return &ShipsResult{Ships: entry.Statistics}, nil
}

// GetClanInfo reads the clan portal. The portal answers 503 for clans that
// no longer exist; that is reported as NotFound even though it may also be a
// genuine outage.
func (c *VortexClient) GetClanInfo(ctx context.Context, clanID int64, region domain.Region) (*ClanInfoResult, error) {
	base, err := c.base(c.clanURL, region)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/clanbase/%d/claninfo/", base, clanID)

	resp, found, err := doRequest[clanInfoResponse](ctx, c, endpointClanInfo, u, nil, fasthttp.StatusServiceUnavailable)
	if err != nil {
		return nil, err
	}
	if !found {
		return &ClanInfoResult{NotFound: true}, nil
	}
	return &ClanInfoResult{Clan: resp.ClanView.Clan}, nil
}

// GetGameVersion asks the glossary GraphQL endpoint for the current client
// version. An empty answer is reported as "".
func (c *VortexClient) GetGameVersion(ctx context.Context, region domain.Region) (string, error) {
	base, err := c.base(c.vortexURL, region)
	if err != nil {
		return "", err
	}
	u := base + "/api/v2/graphql/glossary/version/"

	resp, _, err := doRequest[[]versionAnswer](ctx, c, endpointVersion, u, []byte(versionQuery))
	if err != nil {
		return "", err
	}
	if len(*resp) == 0 {
		return "", nil
	}
	return (*resp)[0].Data.Version, nil
}

// doRequest fetches url and decodes a 200 body into T. A nil body is sent
// as GET, anything else is POSTed as JSON. Statuses listed in notFound
// yield found=false; any other status is a remote failure.
func doRequest[T any](ctx context.Context, c *VortexClient, endpoint, url string, body []byte, notFound ...int) (*T, bool, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.Set("Accept", "application/json")
	if body == nil {
		req.Header.SetMethod(fasthttp.MethodGet)
	} else {
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	start := time.Now()
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = start.Add(constants.ExternalAPITimeout)
	}
	err := c.client.DoDeadline(req, resp, deadline)
	c.metrics.RemoteLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.record(endpoint, "error")
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("remote request failed")
		return nil, false, fmt.Errorf("%w: %s: %w", domain.ErrRemoteUnavailable, endpoint, err)
	}

	status := resp.StatusCode()
	if slices.Contains(notFound, status) {
		c.record(endpoint, "not_found")
		return nil, false, nil
	}
	if status != fasthttp.StatusOK {
		c.record(endpoint, "error")
		c.logger.Warn().Int("status", status).Str("endpoint", endpoint).Msg("remote returned unexpected status")
		return nil, false, fmt.Errorf("%w: %s returned status %d", domain.ErrRemoteUnavailable, endpoint, status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		c.record(endpoint, "error")
		return nil, false, fmt.Errorf("%w: %s: decode body: %w", domain.ErrRemoteUnavailable, endpoint, err)
	}
	c.record(endpoint, "ok")
	return &result, true, nil
}

func (c *VortexClient) record(endpoint, result string) {
	c.metrics.RemoteRequests.WithLabelValues(endpoint, result).Inc()
}
